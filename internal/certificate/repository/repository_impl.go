package repository

import (
	"context"

	"github.com/gdg-oncampus/certhub/internal/certificate/domain"
	"github.com/gdg-oncampus/certhub/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cert *domain.Certificate) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO certificates (
			id, unique_id, recipient_name, recipient_email, event_type,
			event_name, issue_date, issuer_name, org_name, generated_by, pdf_url, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cert.ID,
		cert.UniqueID,
		cert.RecipientName,
		cert.RecipientEmail,
		cert.EventType,
		cert.EventName,
		cert.IssueDate,
		cert.IssuerName,
		cert.OrgName,
		cert.GeneratedBy,
		cert.PDFURL,
		cert.CreatedAt,
	).Error
}

func (r *repo) FindByUniqueID(ctx context.Context, db *gorm.DB, uniqueID string) (*domain.Certificate, error) {
	var cert domain.Certificate
	err := db.WithContext(ctx).Raw(
		`SELECT id, unique_id, recipient_name, recipient_email, event_type,
		        event_name, issue_date, issuer_name, org_name, generated_by, pdf_url, created_at
		 FROM certificates WHERE unique_id = ?`,
		uniqueID,
	).Scan(&cert).Error
	if err != nil {
		return nil, err
	}
	if cert.ID == 0 {
		return nil, nil
	}
	return &cert, nil
}

func (r *repo) ListByIssuer(ctx context.Context, db *gorm.DB, ocid string, page pagination.Page) ([]domain.Certificate, error) {
	var certs []domain.Certificate
	err := db.WithContext(ctx).
		Model(&domain.Certificate{}).
		Where("generated_by = ?", ocid).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&certs).Error
	if err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *repo) CountByIssuer(ctx context.Context, db *gorm.DB, ocid string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Certificate{}).
		Where("generated_by = ?", ocid).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
