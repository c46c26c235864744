package domain

import (
	"context"
	"errors"

	"github.com/gdg-oncampus/certhub/internal/identity"
)

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	OrgName *string `json:"org_name"`
}

// ResolveResult carries the issuer record plus whether this call
// created it (first login).
type ResolveResult struct {
	Issuer  *Issuer
	Created bool
}

type Service interface {
	// Resolve returns the issuer for the caller identity, creating the
	// record on first login with the organization name unset.
	Resolve(ctx context.Context, caller identity.Caller) (*ResolveResult, error)

	Get(ctx context.Context, ocid string) (*Issuer, error)
	UpdateProfile(ctx context.Context, ocid string, req UpdateProfileRequest) (*Issuer, error)
}

var (
	ErrNotFound          = errors.New("issuer_not_found")
	ErrLoginDisabled     = errors.New("login_disabled")
	ErrEmailConflict     = errors.New("email_conflict")
	ErrOrgNameLocked     = errors.New("org_name_locked")
	ErrNothingToUpdate   = errors.New("nothing_to_update")
	ErrProfileIncomplete = errors.New("profile_incomplete")
)
