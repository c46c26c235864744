package domain

import (
	"context"

	"github.com/gdg-oncampus/certhub/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cert *Certificate) error
	FindByUniqueID(ctx context.Context, db *gorm.DB, uniqueID string) (*Certificate, error)
	ListByIssuer(ctx context.Context, db *gorm.DB, ocid string, page pagination.Page) ([]Certificate, error)
	CountByIssuer(ctx context.Context, db *gorm.DB, ocid string) (int64, error)
}
