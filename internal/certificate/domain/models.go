package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EventType string

const (
	EventTypeWorkshop EventType = "workshop"
	EventTypeCourse   EventType = "course"
)

func (t EventType) Valid() bool {
	return t == EventTypeWorkshop || t == EventTypeCourse
}

// Certificate is an issued record. IssuerName and OrgName are a
// snapshot taken at issuance; later issuer edits never alter them.
// PDFURL is filled in by an external rendering process.
type Certificate struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	UniqueID       string       `gorm:"column:unique_id;uniqueIndex;not null" json:"unique_id"`
	RecipientName  string       `gorm:"not null" json:"recipient_name"`
	RecipientEmail *string      `json:"recipient_email,omitempty"`
	EventType      EventType    `gorm:"not null" json:"event_type"`
	EventName      string       `gorm:"not null" json:"event_name"`
	IssueDate      time.Time    `gorm:"not null" json:"issue_date"`
	IssuerName     string       `gorm:"not null" json:"issuer_name"`
	OrgName        string       `gorm:"not null" json:"org_name"`
	GeneratedBy    string       `gorm:"not null;index" json:"generated_by"`
	PDFURL         *string      `gorm:"column:pdf_url" json:"pdf_url,omitempty"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// PublicView is the validation projection; it never exposes the
// issuing identity key.
type PublicView struct {
	UniqueID       string    `json:"unique_id"`
	RecipientName  string    `json:"recipient_name"`
	EventType      EventType `json:"event_type"`
	EventName      string    `json:"event_name"`
	IssueDate      time.Time `json:"issue_date"`
	IssuerName     string    `json:"issuer_name"`
	OrgName        string    `json:"org_name"`
	PDFURL         *string   `json:"pdf_url,omitempty"`
}

func (c *Certificate) Public() PublicView {
	return PublicView{
		UniqueID:      c.UniqueID,
		RecipientName: c.RecipientName,
		EventType:     c.EventType,
		EventName:     c.EventName,
		IssueDate:     c.IssueDate,
		IssuerName:    c.IssuerName,
		OrgName:       c.OrgName,
		PDFURL:        c.PDFURL,
	}
}
