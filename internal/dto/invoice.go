package dto

import (
	"time"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceEventRequest is the invoice financial projection as submitted by the
// invoicing collaborator.
type InvoiceEventRequest struct {
	InvoiceID     string          `json:"invoiceID" binding:"required,uuid"`
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	BookingID     *string         `json:"bookingID,omitempty" binding:"omitempty,uuid"`
	InvoiceDate   time.Time       `json:"invoiceDate" binding:"required"`
	AmountInAED   decimal.Decimal `json:"amountInAED" binding:"gt=0"`
	IsUAEInvoice  bool            `json:"isUAEInvoice"`
	VATApplicable bool            `json:"vatApplicable"`
	VATRate       decimal.Decimal `json:"vatRate"`
}

// ToDomain converts the request to the domain invoice projection.
func (r InvoiceEventRequest) ToDomain() domain.Invoice {
	return domain.Invoice{
		InvoiceID:     r.InvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		BookingID:     r.BookingID,
		InvoiceDate:   r.InvoiceDate,
		AmountInAED:   r.AmountInAED,
		IsUAEInvoice:  r.IsUAEInvoice,
		VATApplicable: r.VATApplicable,
		VATRate:       r.VATRate,
	}
}
