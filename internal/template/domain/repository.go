package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tmpl *EmailTemplate) error
	Update(ctx context.Context, db *gorm.DB, tmpl *EmailTemplate) error
	FindByID(ctx context.Context, db *gorm.DB, orgName string, id snowflake.ID) (*EmailTemplate, error)
	FindByName(ctx context.Context, db *gorm.DB, orgName, name string) (*EmailTemplate, error)
	List(ctx context.Context, db *gorm.DB, orgName string) ([]EmailTemplate, error)
	Delete(ctx context.Context, db *gorm.DB, orgName string, id snowflake.ID) error
}
