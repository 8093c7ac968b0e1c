package domain

// PostingStatus is the outcome of one automatic posting attempt.
type PostingStatus string

const (
	// PostingPosted means the entry was created and posted.
	PostingPosted PostingStatus = "POSTED"
	// PostingSkipped means a required chart code could not be resolved; the
	// triggering business operation still succeeds.
	PostingSkipped PostingStatus = "SKIPPED"
	// PostingFailed means the posting itself failed and was rolled back.
	PostingFailed PostingStatus = "FAILED"
)

// CommissionRole selects which commission an event posts.
type CommissionRole string

const (
	RoleAgent CommissionRole = "AGENT"
	RoleCS    CommissionRole = "CS"
)

// PostingOutcome reports what happened to one leg of a compound posting event.
// Accounting is best-effort relative to the operational flow, so skipped legs
// are surfaced explicitly instead of swallowed.
type PostingOutcome struct {
	TransactionType TransactionType `json:"transactionType"`
	Status          PostingStatus   `json:"status"`
	Reason          string          `json:"reason,omitempty"`
	Entry           *JournalEntry   `json:"entry,omitempty"`
}
