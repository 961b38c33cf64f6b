package usecases

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"training-booking-service/internal/module/certificate/models/entity"
	"training-booking-service/internal/module/certificate/models/request"
	"training-booking-service/internal/module/certificate/models/response"
	"training-booking-service/internal/module/certificate/render"
	"training-booking-service/internal/module/certificate/repositories"
	"training-booking-service/internal/pkg/audit"
	"training-booking-service/internal/pkg/database"
	"training-booking-service/internal/pkg/errors"
	"training-booking-service/internal/pkg/metrics"
	"training-booking-service/internal/pkg/notification"
	"training-booking-service/internal/pkg/reference"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type usecase struct {
	repo     repositories.Repositories
	tx       database.Transactor
	refs     *reference.Generator
	notifier notification.Dispatcher
	audit    audit.Logger
	log      *otelzap.Logger
	issuer   string
	now      func() time.Time
}

type Usecase interface {
	// http
	Issue(ctx context.Context, payload *request.IssueCertificate) (response.Certificate, error)
	Revoke(ctx context.Context, payload *request.RevokeCertificate) (response.Certificate, error)
	Reissue(ctx context.Context, payload *request.ReissueCertificate) (response.Certificate, error)
	Download(ctx context.Context, certificateNumber string, userID int64, admin bool) (response.Download, error)
	// queue
	MarkEmailed(ctx context.Context, certificateNumber string) error
	// cron
	ExpireCertificates(ctx context.Context) (int, error)
}

type Options struct {
	Issuer string
	Now    func() time.Time
}

func New(repo repositories.Repositories, tx database.Transactor, refs *reference.Generator, notifier notification.Dispatcher, auditLog audit.Logger, log *otelzap.Logger, opts Options) Usecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &usecase{
		repo:     repo,
		tx:       tx,
		refs:     refs,
		notifier: notifier,
		audit:    auditLog,
		log:      log,
		issuer:   opts.Issuer,
		now:      opts.Now,
	}
}

// Issue returns the booking's current certificate if it has one, otherwise it
// issues a new one.
func (u *usecase) Issue(ctx context.Context, payload *request.IssueCertificate) (response.Certificate, error) {
	span, ctx := apm.StartSpan(ctx, "certificate.Issue", "usecase")
	defer span.End()

	certificate, email, created, err := u.issue(ctx, payload.BookingReference, payload.HolderName, payload.ActorID)
	if err != nil {
		return response.Certificate{}, err
	}

	resp := toResponse(certificate)
	resp.PDFBlob = certificate.PDFBlob
	resp.AlreadyIssued = !created
	if created {
		u.announce(ctx, certificate, email)
	}
	return resp, nil
}

func (u *usecase) issue(ctx context.Context, bookingReference, holderName string, actorID int64) (entity.Certificate, string, bool, error) {
	issueDate := entity.IssueDay(u.now())

	var (
		certificate entity.Certificate
		email       string
		created     bool
	)
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		eligibility, err := u.repo.LockEligibility(ctx, bookingReference)
		if err != nil {
			return err
		}
		email = eligibility.Email

		existing, err := u.repo.FindCurrentByBookingID(ctx, eligibility.BookingID)
		if err == nil {
			certificate = existing
			return nil
		}
		if !errors.Is(err, errors.KindNotFound) {
			return err
		}

		if err := eligibility.Check(); err != nil {
			return err
		}

		if holderName == "" {
			holderName = eligibility.FullName
		}
		certificate = entity.Certificate{
			ID:               uuid.New(),
			BookingID:        eligibility.BookingID,
			BookingReference: eligibility.BookingReference,
			HolderUserID:     eligibility.UserID,
			HolderEmail:      eligibility.Email,
			HolderName:       holderName,
			CourseName:       eligibility.CourseName,
			DurationHours:    eligibility.DurationHours,
			IssueDate:        issueDate,
			ExpiryDate:       entity.ExpiryDate(issueDate, int(eligibility.ValidityYears.Int32)),
			Status:           entity.StatusActive,
		}
		if actorID != 0 {
			certificate.IssuedBy = sql.NullInt64{Int64: actorID, Valid: true}
		}

		number, err := u.refs.Allocate(ctx, reference.KindCertificate, issueDate, func(number string) error {
			certificate.CertificateNumber = number
			data := u.renderData(certificate)
			pdf, err := render.Render(data)
			if err != nil {
				u.log.Ctx(ctx).Error(fmt.Sprintf("error render certificate: %v", err), zap.String("certificate_number", number))
				return errors.InternalServerError("error render certificate")
			}
			certificate.PDFBlob = pdf
			certificate.VerificationCode = render.VerificationCode(data)
			return u.repo.InsertCertificate(ctx, certificate)
		})
		if err != nil {
			return err
		}
		certificate.CertificateNumber = number

		if err := u.repo.MarkBookingCertificateIssued(ctx, certificate.BookingID, issueDate); err != nil {
			return err
		}

		created = true
		return u.audit.Certificate(ctx, audit.CertificateEntry{
			CertificateID: certificate.ID,
			ActorID:       actor(actorID),
			Action:        audit.ActionGenerated,
			After: map[string]string{
				"certificate_number": certificate.CertificateNumber,
				"holder_name":        certificate.HolderName,
				"status":             string(certificate.Status),
				"expiry_date":        certificate.ExpiryDate.Format(dateLayout),
			},
		})
	})
	if err != nil {
		return entity.Certificate{}, "", false, err
	}
	return certificate, email, created, nil
}

func (u *usecase) Revoke(ctx context.Context, payload *request.RevokeCertificate) (response.Certificate, error) {
	certificate, err := u.revoke(ctx, payload.CertificateNumber, payload.Reason, payload.ActorID, false)
	if err != nil {
		return response.Certificate{}, err
	}
	return toResponse(certificate), nil
}

// revoke commits on its own. With allowRevoked an already revoked
// certificate is returned unchanged instead of failing.
func (u *usecase) revoke(ctx context.Context, number, reason string, actorID int64, allowRevoked bool) (entity.Certificate, error) {
	var (
		certificate entity.Certificate
		revoked     bool
	)
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		certificate, err = u.repo.LockByNumber(ctx, number)
		if err != nil {
			return err
		}
		if allowRevoked && certificate.Status == entity.StatusRevoked {
			return nil
		}

		before := certificate.Status
		if err := certificate.Revoke(reason, u.now()); err != nil {
			return err
		}
		if err := u.repo.UpdateStatus(ctx, certificate); err != nil {
			return err
		}

		revoked = true
		return u.audit.Certificate(ctx, audit.CertificateEntry{
			CertificateID: certificate.ID,
			ActorID:       actor(actorID),
			Action:        audit.ActionRevoked,
			Before:        map[string]string{"status": string(before)},
			After:         map[string]string{"status": string(certificate.Status), "reason": reason},
		})
	})
	if err != nil {
		return entity.Certificate{}, err
	}

	if revoked {
		metrics.RecordCertificate("revoked")
		u.notifier.Send(ctx, notification.TopicCertificateRevoked, notification.Message{
			EmailRecipient: certificate.HolderEmail,
			RecipientName:  certificate.HolderName,
			Subject:        "Your certificate has been revoked",
			Template:       "certificate_revoked",
			Data: map[string]string{
				"certificate_number": certificate.CertificateNumber,
				"reason":             reason,
			},
		})
	}
	return certificate, nil
}

// Reissue revokes a certificate and issues a replacement for the same
// booking. The revocation stands even if the replacement fails, so a retry
// picks up from the revoked certificate.
func (u *usecase) Reissue(ctx context.Context, payload *request.ReissueCertificate) (response.Certificate, error) {
	old, err := u.revoke(ctx, payload.CertificateNumber, payload.Reason, payload.ActorID, true)
	if err != nil {
		return response.Certificate{}, err
	}

	fresh, email, created, err := u.issue(ctx, old.BookingReference, payload.HolderName, payload.ActorID)
	if err != nil {
		return response.Certificate{}, err
	}

	if !old.SupersededBy.Valid {
		err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			locked, err := u.repo.LockByNumber(ctx, old.CertificateNumber)
			if err != nil {
				return err
			}
			locked.SupersededBy = uuid.NullUUID{UUID: fresh.ID, Valid: true}
			return u.repo.UpdateStatus(ctx, locked)
		})
		if err != nil {
			return response.Certificate{}, err
		}
	}

	if created {
		metrics.RecordCertificate("reissued")
		u.announce(ctx, fresh, email)
	}

	resp := toResponse(fresh)
	resp.PDFBlob = fresh.PDFBlob
	resp.AlreadyIssued = !created
	resp.Supersedes = old.CertificateNumber
	return resp, nil
}

func (u *usecase) Download(ctx context.Context, certificateNumber string, userID int64, admin bool) (response.Download, error) {
	if !reference.Validate(reference.KindCertificate, certificateNumber) {
		return response.Download{}, errors.BadRequest(fmt.Sprintf("malformed certificate number %s", certificateNumber))
	}

	certificate, err := u.repo.FindByNumber(ctx, certificateNumber)
	if err != nil {
		return response.Download{}, err
	}
	if !admin && certificate.HolderUserID != userID {
		return response.Download{}, errors.NotFound(fmt.Sprintf("certificate %s not found", certificateNumber))
	}
	if certificate.Status == entity.StatusRevoked {
		return response.Download{}, errors.NotEligible(fmt.Sprintf("certificate %s has been revoked", certificateNumber))
	}

	content := certificate.PDFBlob
	if len(content) == 0 {
		// rendering is deterministic, so this matches what was issued
		content, err = render.Render(u.renderData(certificate))
		if err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error render certificate: %v", err), zap.String("certificate_number", certificateNumber))
			return response.Download{}, errors.InternalServerError("error render certificate")
		}
	}

	count, err := u.repo.IncrementDownload(ctx, certificate.ID)
	if err != nil {
		return response.Download{}, err
	}

	var actorID *int64
	if userID != 0 {
		actorID = &userID
	}
	if err := u.audit.Certificate(ctx, audit.CertificateEntry{
		CertificateID: certificate.ID,
		ActorID:       actorID,
		Action:        audit.ActionDownloaded,
		After:         map[string]int{"download_count": count},
	}); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error audit certificate download: %v", err), zap.String("certificate_number", certificateNumber))
	}

	metrics.RecordCertificate("downloaded")
	return response.Download{
		FileName:      certificate.CertificateNumber + ".pdf",
		Content:       content,
		DownloadCount: count,
	}, nil
}

func (u *usecase) MarkEmailed(ctx context.Context, certificateNumber string) error {
	certificate, err := u.repo.FindByNumber(ctx, certificateNumber)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		changed, err := u.repo.MarkEmailed(ctx, certificate.ID, u.now())
		if err != nil || !changed {
			return err
		}
		return u.audit.Certificate(ctx, audit.CertificateEntry{
			CertificateID: certificate.ID,
			Action:        audit.ActionEmailed,
			After:         map[string]bool{"emailed": true},
		})
	})
}

// ExpireCertificates moves every active certificate past its expiry date to
// expired and returns how many changed.
func (u *usecase) ExpireCertificates(ctx context.Context) (int, error) {
	now := u.now()

	var expired []entity.Certificate
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		expired, err = u.repo.ExpireDue(ctx, now)
		if err != nil {
			return err
		}
		for _, c := range expired {
			err := u.audit.Certificate(ctx, audit.CertificateEntry{
				CertificateID: c.ID,
				Action:        audit.ActionExpired,
				Before:        map[string]string{"status": string(entity.StatusActive)},
				After:         map[string]string{"status": string(entity.StatusExpired)},
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for range expired {
		metrics.RecordCertificate("expired")
	}
	if len(expired) > 0 {
		u.log.Ctx(ctx).Info("expired certificates", zap.Int("count", len(expired)))
	}
	return len(expired), nil
}

func (u *usecase) announce(ctx context.Context, certificate entity.Certificate, email string) {
	metrics.RecordCertificate("issued")
	u.notifier.Send(ctx, notification.TopicCertificateIssued, notification.Message{
		EmailRecipient: email,
		RecipientName:  certificate.HolderName,
		Subject:        fmt.Sprintf("Your %s certificate", certificate.CourseName),
		Template:       "certificate_issued",
		Data: map[string]string{
			"certificate_number": certificate.CertificateNumber,
			"course_name":        certificate.CourseName,
			"expiry_date":        certificate.ExpiryDate.Format(dateLayout),
		},
		Attachment:     certificate.PDFBlob,
		AttachmentName: certificate.CertificateNumber + ".pdf",
	})
}

func (u *usecase) renderData(c entity.Certificate) render.CertificateData {
	return render.CertificateData{
		CertificateNumber: c.CertificateNumber,
		HolderName:        c.HolderName,
		CourseName:        c.CourseName,
		DurationHours:     c.DurationHours,
		IssueDate:         c.IssueDate,
		ExpiryDate:        c.ExpiryDate,
		Issuer:            u.issuer,
	}
}

func actor(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func toResponse(c entity.Certificate) response.Certificate {
	return response.Certificate{
		CertificateNumber: c.CertificateNumber,
		BookingReference:  c.BookingReference,
		HolderName:        c.HolderName,
		CourseName:        c.CourseName,
		IssueDate:         c.IssueDate.Format(dateLayout),
		ExpiryDate:        c.ExpiryDate.Format(dateLayout),
		Status:            string(c.Status),
		VerificationCode:  c.VerificationCode,
	}
}
