package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Type discriminates the embedded starter templates from rows an
// organization saved itself.
type Type string

const (
	TypeBuiltin Type = "builtin"
	TypeCustom  Type = "custom"
)

func (t Type) Valid() bool {
	return t == TypeBuiltin || t == TypeCustom
}

type EmailTemplate struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id,string"`
	OrgName     string       `gorm:"size:255;not null;uniqueIndex:idx_email_templates_org_name" json:"org_name"`
	Name        string       `gorm:"size:255;not null;uniqueIndex:idx_email_templates_org_name" json:"name"`
	Description *string      `gorm:"size:512" json:"description,omitempty"`
	HTMLContent string       `gorm:"type:text;not null" json:"html_content"`
	IsDefault   bool         `gorm:"not null;default:false" json:"is_default"`
	CreatedBy   string       `gorm:"size:255;not null" json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}

func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
