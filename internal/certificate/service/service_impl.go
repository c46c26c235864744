package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gdg-oncampus/certhub/internal/certificate/domain"
	"github.com/gdg-oncampus/certhub/internal/clock"
	issuerdomain "github.com/gdg-oncampus/certhub/internal/issuer/domain"
	"github.com/gdg-oncampus/certhub/internal/mailer"
	"github.com/gdg-oncampus/certhub/pkg/db"
	"github.com/gdg-oncampus/certhub/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	issueDateLayout = "2006-01-02"

	// Reissue attempts after a unique_id collision before giving up.
	maxIDAttempts = 3
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	IssuerRepo issuerdomain.Repository
	Mailer     mailer.CertificateSender
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	issuerRepo issuerdomain.Repository
	mailer     mailer.CertificateSender
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("certificate.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		issuerRepo: p.IssuerRepo,
		mailer:     p.Mailer,
	}
}

func (s *Service) Create(ctx context.Context, ocid string, req domain.CreateRequest) (*domain.CreateResult, error) {
	issuer, err := s.requireOnboardedIssuer(ctx, ocid)
	if err != nil {
		return nil, err
	}

	cert, err := s.insertOne(ctx, issuer, req)
	if err != nil {
		return nil, err
	}

	result := &domain.CreateResult{Certificate: cert}
	result.Notification = s.dispatchNotification(ctx, cert)
	return result, nil
}

func (s *Service) CreateBatch(ctx context.Context, ocid string, reqs []domain.CreateRequest) (*domain.BatchResult, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	// The onboarding precondition is checked once for the whole batch;
	// per-row failures below never abort the remaining rows.
	issuer, err := s.requireOnboardedIssuer(ctx, ocid)
	if err != nil {
		return nil, err
	}

	result := &domain.BatchResult{
		Total:        len(reqs),
		Certificates: make([]domain.Certificate, 0, len(reqs)),
		Errors:       make([]domain.BatchError, 0),
	}

	for _, req := range reqs {
		cert, err := s.insertOne(ctx, issuer, req)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.BatchError{
				Data:  req,
				Error: err.Error(),
			})
			continue
		}

		result.Successful++
		result.Certificates = append(result.Certificates, *cert)
		s.dispatchNotification(ctx, cert)
	}

	return result, nil
}

func (s *Service) ListByIssuer(ctx context.Context, ocid string, page pagination.Page) (*domain.ListResponse, error) {
	page = page.Clamp()

	certs, err := s.repo.ListByIssuer(ctx, s.db, ocid, page)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByIssuer(ctx, s.db, ocid)
	if err != nil {
		return nil, err
	}

	return &domain.ListResponse{
		PageInfo: pagination.PageInfo{
			Total:  total,
			Limit:  page.Limit,
			Offset: page.Offset,
		},
		Certificates: certs,
	}, nil
}

func (s *Service) Validate(ctx context.Context, uniqueID string) (*domain.ValidationResult, error) {
	uniqueID = strings.TrimSpace(uniqueID)
	if uniqueID == "" {
		return nil, domain.ErrNotFound
	}

	cert, err := s.repo.FindByUniqueID(ctx, s.db, uniqueID)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, domain.ErrNotFound
	}

	public := cert.Public()
	return &domain.ValidationResult{Valid: true, Certificate: &public}, nil
}

func (s *Service) requireOnboardedIssuer(ctx context.Context, ocid string) (*issuerdomain.Issuer, error) {
	issuer, err := s.issuerRepo.FindByOCID(ctx, s.db, ocid)
	if err != nil {
		return nil, err
	}
	if issuer == nil {
		return nil, issuerdomain.ErrNotFound
	}
	if issuer.OrgName == nil || strings.TrimSpace(*issuer.OrgName) == "" {
		return nil, issuerdomain.ErrProfileIncomplete
	}
	return issuer, nil
}

func (s *Service) insertOne(ctx context.Context, issuer *issuerdomain.Issuer, req domain.CreateRequest) (*domain.Certificate, error) {
	recipientName := strings.TrimSpace(req.RecipientName)
	if recipientName == "" {
		return nil, domain.ErrInvalidRecipientName
	}

	eventType := domain.EventType(strings.TrimSpace(req.EventType))
	if !eventType.Valid() {
		return nil, domain.ErrInvalidEventType
	}

	eventName := strings.TrimSpace(req.EventName)
	if eventName == "" {
		return nil, domain.ErrInvalidEventName
	}

	now := s.clock.Now()

	issueDate := now.Truncate(24 * time.Hour)
	if raw := strings.TrimSpace(req.IssueDate); raw != "" {
		parsed, err := time.ParseInLocation(issueDateLayout, raw, time.UTC)
		if err != nil {
			return nil, domain.ErrInvalidIssueDate
		}
		issueDate = parsed
	}

	var recipientEmail *string
	if req.RecipientEmail != nil {
		if email := strings.TrimSpace(*req.RecipientEmail); email != "" {
			recipientEmail = &email
		}
	}

	cert := &domain.Certificate{
		RecipientName:  recipientName,
		RecipientEmail: recipientEmail,
		EventType:      eventType,
		EventName:      eventName,
		IssueDate:      issueDate,
		IssuerName:     issuer.Name,
		OrgName:        *issuer.OrgName,
		GeneratedBy:    issuer.OCID,
		CreatedAt:      now,
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		uniqueID, err := domain.NewUniqueID(now)
		if err != nil {
			return nil, err
		}

		cert.ID = s.genID.Generate()
		cert.UniqueID = uniqueID

		err = s.repo.Insert(ctx, s.db, cert)
		if err == nil {
			return cert, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}

		s.log.Warn("unique id collision, regenerating",
			zap.String("unique_id", uniqueID),
			zap.Int("attempt", attempt+1),
		)
	}

	return nil, domain.ErrIDExhausted
}

// dispatchNotification sends the congratulations email when a recipient
// address is present. The certificate row is already committed; failure
// here is logged and reported in the outcome, never as an error.
func (s *Service) dispatchNotification(ctx context.Context, cert *domain.Certificate) domain.NotificationOutcome {
	if cert.RecipientEmail == nil {
		return domain.NotificationOutcome{}
	}

	outcome := domain.NotificationOutcome{Attempted: true}
	err := s.mailer.SendCertificateIssued(ctx, mailer.CertificateIssued{
		To:            *cert.RecipientEmail,
		RecipientName: cert.RecipientName,
		EventName:     cert.EventName,
		UniqueID:      cert.UniqueID,
		PDFURL:        cert.PDFURL,
	})
	if err != nil {
		outcome.Error = err.Error()
		s.log.Warn("certificate email dispatch failed",
			zap.String("unique_id", cert.UniqueID),
			zap.Error(err),
		)
		return outcome
	}

	outcome.Delivered = true
	return outcome
}
