package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, issuer *Issuer) error
	FindByOCID(ctx context.Context, db *gorm.DB, ocid string) (*Issuer, error)

	// UpdateName and SetOrgNameOnce are the only write shapes the
	// profile supports: no statement is assembled from optional
	// fields at runtime. SetOrgNameOnce writes the value and the lock
	// timestamp together and matches only unlocked rows; zero rows
	// affected means the field was already locked.
	UpdateName(ctx context.Context, db *gorm.DB, ocid, name string, now time.Time) error
	SetOrgNameOnce(ctx context.Context, db *gorm.DB, ocid, orgName string, now time.Time) (int64, error)
}
