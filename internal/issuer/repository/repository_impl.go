package repository

import (
	"context"
	"time"

	"github.com/gdg-oncampus/certhub/internal/issuer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, issuer *domain.Issuer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO allowed_leaders (id, ocid, name, email, org_name, org_name_set_at, can_login, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		issuer.ID,
		issuer.OCID,
		issuer.Name,
		issuer.Email,
		issuer.OrgName,
		issuer.OrgNameSetAt,
		issuer.CanLogin,
		issuer.CreatedAt,
		issuer.UpdatedAt,
	).Error
}

func (r *repo) FindByOCID(ctx context.Context, db *gorm.DB, ocid string) (*domain.Issuer, error) {
	var issuer domain.Issuer
	err := db.WithContext(ctx).Raw(
		`SELECT id, ocid, name, email, org_name, org_name_set_at, can_login, created_at, updated_at
		 FROM allowed_leaders WHERE ocid = ?`,
		ocid,
	).Scan(&issuer).Error
	if err != nil {
		return nil, err
	}
	if issuer.ID == 0 {
		return nil, nil
	}
	return &issuer, nil
}

func (r *repo) UpdateName(ctx context.Context, db *gorm.DB, ocid, name string, now time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE allowed_leaders SET name = ?, updated_at = ? WHERE ocid = ?`,
		name,
		now,
		ocid,
	).Error
}

func (r *repo) SetOrgNameOnce(ctx context.Context, db *gorm.DB, ocid, orgName string, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE allowed_leaders
		 SET org_name = ?, org_name_set_at = ?, updated_at = ?
		 WHERE ocid = ? AND org_name_set_at IS NULL`,
		orgName,
		now,
		now,
		ocid,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
