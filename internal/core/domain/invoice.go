package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the financial projection of an invoice record as consumed from
// the invoicing module.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	BookingID     *string         `json:"bookingID,omitempty"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	AmountInAED   decimal.Decimal `json:"amountInAED"` // Sale amount; VAT-inclusive for UAE invoices
	IsUAEInvoice  bool            `json:"isUAEInvoice"`
	VATApplicable bool            `json:"vatApplicable"`
	VATRate       decimal.Decimal `json:"vatRate"`
}
