package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("template_not_found")
	ErrInvalidName    = errors.New("invalid_template_name")
	ErrInvalidContent = errors.New("invalid_template_content")
	ErrInvalidType    = errors.New("invalid_template_type")
	ErrInvalidID      = errors.New("invalid_template_id")
	ErrDefaultDelete  = errors.New("default_template_delete")
)

type UpsertRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	HTMLContent string  `json:"html_content" binding:"required"`
	IsDefault   bool    `json:"is_default"`
}

// Response describes one template, built-in or custom. Built-ins have
// no ID and no timestamps. HTMLContent is populated on fetch only.
type Response struct {
	ID          string     `json:"id,omitempty"`
	Type        Type       `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsDefault   bool       `json:"is_default"`
	HTMLContent string     `json:"html_content,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ListResponse struct {
	Templates []Response `json:"templates"`
}

type Service interface {
	List(ctx context.Context, ocid string) (*ListResponse, error)
	Get(ctx context.Context, ocid string, typ Type, name string) (*Response, error)
	Upsert(ctx context.Context, ocid string, req UpsertRequest) (*Response, error)
	Delete(ctx context.Context, ocid string, id string) error
	SetDefault(ctx context.Context, ocid string, id string) (*Response, error)
}
