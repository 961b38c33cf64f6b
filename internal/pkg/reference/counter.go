package reference

import (
	"context"
	"fmt"

	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"

	"github.com/jmoiron/sqlx"
)

type postgresCounter struct {
	db *sqlx.DB
}

// NewPostgresCounter keeps one row per prefix in reference_sequences. The
// upsert takes the row lock, so concurrent callers are serialized and, inside a
// transaction, a rolled back allocation gives its number back.
func NewPostgresCounter(db *sqlx.DB) Counter {
	return &postgresCounter{db: db}
}

func (c *postgresCounter) Next(ctx context.Context, prefix string) (int64, error) {
	query := `
		INSERT INTO reference_sequences (prefix, last_value)
		VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE
		SET last_value = reference_sequences.last_value + 1
		RETURNING last_value`

	var next int64
	if err := sqlx.GetContext(ctx, database.Conn(ctx, c.db), &next, query, prefix); err != nil {
		if database.IsRetryable(err) {
			return 0, err
		}
		return 0, errors.InternalServerError(fmt.Sprintf("error allocate sequence for %s", prefix))
	}
	return next, nil
}
