package audit_test

import (
	"context"
	"regexp"
	"testing"

	"training-booking-service/internal/pkg/audit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"
)

func TestAdmin(t *testing.T) {
	db, mock, err := sqlxmock.Newx()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admin_activity_logs")).
		WithArgs(int64(7), "schedule_published", "course_schedule", "42", []byte(`{"status":"draft"}`), []byte(`{"status":"published"}`)).
		WillReturnResult(sqlxmock.NewResult(1, 1))

	err = audit.New(db).Admin(context.Background(), audit.AdminEntry{
		ActorID:    7,
		Action:     "schedule_published",
		EntityType: "course_schedule",
		EntityID:   "42",
		Before:     map[string]string{"status": "draft"},
		After:      map[string]string{"status": "published"},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificate(t *testing.T) {
	db, mock, err := sqlxmock.Newx()
	require.NoError(t, err)
	defer db.Close()

	certID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO certificate_audit_logs")).
		WithArgs(certID, nil, audit.ActionGenerated, nil, []byte(`{"status":"active"}`)).
		WillReturnResult(sqlxmock.NewResult(1, 1))

	err = audit.New(db).Certificate(context.Background(), audit.CertificateEntry{
		CertificateID: certID,
		Action:        audit.ActionGenerated,
		After:         map[string]string{"status": "active"},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
