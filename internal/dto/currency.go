package dto

import (
	"github.com/shopspring/decimal"
)

// ConvertRequest asks for a conversion between two currency codes.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gte=0"`
	From   string          `json:"from" binding:"required,len=3"`
	To     string          `json:"to" binding:"required,len=3"`
}

// ConvertResponse carries the converted amount.
type ConvertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Result decimal.Decimal `json:"result"`
}
