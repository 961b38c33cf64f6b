package audit

import (
	"context"
	"fmt"

	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	ActionGenerated  = "generated"
	ActionRevoked    = "revoked"
	ActionExpired    = "expired"
	ActionEmailed    = "emailed"
	ActionDownloaded = "downloaded"
)

type AdminEntry struct {
	ActorID    int64
	Action     string
	EntityType string
	EntityID   string
	Before     interface{}
	After      interface{}
}

type CertificateEntry struct {
	CertificateID uuid.UUID
	ActorID       *int64
	Action        string
	Before        interface{}
	After         interface{}
}

// Logger appends to the admin and certificate audit trails. Entries are never
// updated or deleted; when called inside a transaction they commit with it.
type Logger interface {
	Admin(ctx context.Context, entry AdminEntry) error
	Certificate(ctx context.Context, entry CertificateEntry) error
}

type logger struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Logger {
	return &logger{db: db}
}

func (l *logger) Admin(ctx context.Context, entry AdminEntry) error {
	before, after, err := marshalStates(entry.Before, entry.After)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO admin_activity_logs (actor_id, action, entity_type, entity_id, before_state, after_state)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = database.Conn(ctx, l.db).ExecContext(ctx, query,
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, before, after)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		return errors.InternalServerError(fmt.Sprintf("error write admin activity log: %s", entry.Action))
	}
	return nil
}

func (l *logger) Certificate(ctx context.Context, entry CertificateEntry) error {
	before, after, err := marshalStates(entry.Before, entry.After)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO certificate_audit_logs (certificate_id, actor_id, action, before_state, after_state)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = database.Conn(ctx, l.db).ExecContext(ctx, query,
		entry.CertificateID, entry.ActorID, entry.Action, before, after)
	if err != nil {
		if database.IsRetryable(err) {
			return err
		}
		return errors.InternalServerError(fmt.Sprintf("error write certificate audit log: %s", entry.Action))
	}
	return nil
}

func marshalStates(before, after interface{}) (interface{}, interface{}, error) {
	b, err := marshalState(before)
	if err != nil {
		return nil, nil, err
	}
	a, err := marshalState(after)
	if err != nil {
		return nil, nil, err
	}
	return b, a, nil
}

// marshalState keeps absent states as SQL NULL.
func marshalState(state interface{}) (interface{}, error) {
	if state == nil {
		return nil, nil
	}
	b, err := json.Marshal(state)
	if err != nil {
		return nil, errors.InternalServerError("error marshal audit state")
	}
	return b, nil
}
