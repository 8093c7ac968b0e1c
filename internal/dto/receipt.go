package dto

import (
	"time"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptEventRequest is the customer-payment projection as submitted by the
// payments collaborator.
type ReceiptEventRequest struct {
	ReceiptID     string          `json:"receiptID" binding:"required,uuid"`
	ReceiptNumber string          `json:"receiptNumber" binding:"required"`
	InvoiceID     *string         `json:"invoiceID,omitempty" binding:"omitempty,uuid"`
	ReceiptDate   time.Time       `json:"receiptDate" binding:"required"`
	AmountInAED   decimal.Decimal `json:"amountInAED" binding:"gt=0"`
	Method        string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD CHEQUE"`
}

// ToDomain converts the request to the domain receipt projection.
func (r ReceiptEventRequest) ToDomain() domain.Receipt {
	return domain.Receipt{
		ReceiptID:     r.ReceiptID,
		ReceiptNumber: r.ReceiptNumber,
		InvoiceID:     r.InvoiceID,
		ReceiptDate:   r.ReceiptDate,
		AmountInAED:   r.AmountInAED,
		Method:        domain.PaymentMethod(r.Method),
	}
}
