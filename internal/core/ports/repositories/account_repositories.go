package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code (e.g. "4101").
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAccountsByTypes retrieves all active accounts of the given types.
	ListAccountsByTypes(ctx context.Context, types []domain.AccountType) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
// Accounts are never deleted, only deactivated.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines the posting-time operations that must run
// inside a caller-owned database transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for update.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyPostingInTx increments the debit account's debit_balance and the
	// credit account's credit_balance by amount, and applies the signed
	// balance deltas, all within the given transaction.
	ApplyPostingInTx(ctx context.Context, tx pgx.Tx, debitAccountID, creditAccountID string, amount decimal.Decimal, debitDelta, creditDelta decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction management.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
