package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for named counters.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// Next atomically increments the named counter and returns the new value. The
// single UPDATE ... RETURNING round trip is what makes two concurrent callers
// unable to observe the same value. First use of a name creates it at 1.
func (r *PgxSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `
		UPDATE sequences
		SET current_value = current_value + 1
		WHERE name = $1
		RETURNING current_value;
	`

	var value int64
	err := r.Pool.QueryRow(ctx, query, name).Scan(&value)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}

	// Unknown name: create the row. ON CONFLICT covers the race where another
	// caller created it between our UPDATE and INSERT; the increment on
	// conflict keeps both callers' values distinct.
	insert := `
		INSERT INTO sequences (name, current_value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET current_value = sequences.current_value + 1
		RETURNING current_value;
	`
	if err := r.Pool.QueryRow(ctx, insert, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to create sequence %s: %w", name, err)
	}
	return value, nil
}
