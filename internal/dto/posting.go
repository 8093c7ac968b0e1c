package dto

import (
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
)

// PostingOutcomeResponse is the wire shape of one posting attempt's result.
type PostingOutcomeResponse struct {
	TransactionType string                `json:"transactionType"`
	Status          string                `json:"status"`
	Reason          string                `json:"reason,omitempty"`
	Entry           *JournalEntryResponse `json:"entry,omitempty"`
}

// ToPostingOutcomeResponse converts a domain posting outcome to its wire shape.
func ToPostingOutcomeResponse(o domain.PostingOutcome) PostingOutcomeResponse {
	resp := PostingOutcomeResponse{
		TransactionType: string(o.TransactionType),
		Status:          string(o.Status),
		Reason:          o.Reason,
	}
	if o.Entry != nil {
		entry := ToJournalEntryResponse(o.Entry)
		resp.Entry = &entry
	}
	return resp
}

// ToPostingOutcomeResponses converts a slice of outcomes.
func ToPostingOutcomeResponses(outcomes []domain.PostingOutcome) []PostingOutcomeResponse {
	responses := make([]PostingOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		responses[i] = ToPostingOutcomeResponse(o)
	}
	return responses
}

// CommissionEventRequest posts one commission role of a booking.
type CommissionEventRequest struct {
	Booking BookingEventRequest `json:"booking" binding:"required"`
	Role    string              `json:"role" binding:"required,oneof=AGENT CS"`
}
