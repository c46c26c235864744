package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Issuer is an authenticated leader allowed to generate certificates.
// OCID is the stable identity key injected by the authentication proxy
// and the sole join key to certificates. OrgName transitions from NULL
// to a value exactly once; OrgNameSetAt being non-NULL marks the lock.
type Issuer struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OCID         string       `gorm:"column:ocid;uniqueIndex;not null" json:"ocid"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	OrgName      *string      `gorm:"column:org_name" json:"org_name"`
	OrgNameSetAt *time.Time   `gorm:"column:org_name_set_at" json:"org_name_set_at"`
	CanLogin     bool         `gorm:"not null;default:true" json:"can_login"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

func (Issuer) TableName() string {
	return "allowed_leaders"
}

// OrgLocked reports whether the organization name has been set and locked.
func (i *Issuer) OrgLocked() bool {
	return i.OrgName != nil && *i.OrgName != "" && i.OrgNameSetAt != nil
}
