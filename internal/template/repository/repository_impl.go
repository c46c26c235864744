package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	templatedomain "github.com/gdg-oncampus/certhub/internal/template/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() templatedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tmpl *templatedomain.EmailTemplate) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO email_templates (
			id, org_name, name, description, html_content, is_default, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tmpl.ID,
		tmpl.OrgName,
		tmpl.Name,
		tmpl.Description,
		tmpl.HTMLContent,
		tmpl.IsDefault,
		tmpl.CreatedBy,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tmpl *templatedomain.EmailTemplate) error {
	return db.WithContext(ctx).Exec(
		`UPDATE email_templates
		 SET description = ?, html_content = ?, is_default = ?, updated_at = ?
		 WHERE org_name = ? AND id = ?`,
		tmpl.Description,
		tmpl.HTMLContent,
		tmpl.IsDefault,
		tmpl.UpdatedAt,
		tmpl.OrgName,
		tmpl.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgName string, id snowflake.ID) (*templatedomain.EmailTemplate, error) {
	var tmpl templatedomain.EmailTemplate
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_name, name, description, html_content, is_default, created_by, created_at, updated_at
		 FROM email_templates
		 WHERE org_name = ? AND id = ?`,
		orgName,
		id,
	).Scan(&tmpl).Error
	if err != nil {
		return nil, err
	}
	if tmpl.ID == 0 {
		return nil, nil
	}
	return &tmpl, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, orgName, name string) (*templatedomain.EmailTemplate, error) {
	var tmpl templatedomain.EmailTemplate
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_name, name, description, html_content, is_default, created_by, created_at, updated_at
		 FROM email_templates
		 WHERE org_name = ? AND name = ?`,
		orgName,
		name,
	).Scan(&tmpl).Error
	if err != nil {
		return nil, err
	}
	if tmpl.ID == 0 {
		return nil, nil
	}
	return &tmpl, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgName string) ([]templatedomain.EmailTemplate, error) {
	var items []templatedomain.EmailTemplate
	err := db.WithContext(ctx).
		Model(&templatedomain.EmailTemplate{}).
		Where("org_name = ?", orgName).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgName string, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM email_templates WHERE org_name = ? AND id = ?`,
		orgName,
		id,
	).Error
}
