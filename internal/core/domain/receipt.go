package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a customer payment was collected.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentBank     PaymentMethod = "BANK_TRANSFER"
	PaymentCard     PaymentMethod = "CARD"
	PaymentCheque   PaymentMethod = "CHEQUE"
)

// Receipt is the financial projection of a customer payment as consumed from
// the payments module.
type Receipt struct {
	ReceiptID     string          `json:"receiptID"`
	ReceiptNumber string          `json:"receiptNumber"`
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	ReceiptDate   time.Time       `json:"receiptDate"`
	AmountInAED   decimal.Decimal `json:"amountInAED"`
	Method        PaymentMethod   `json:"method"`
}
