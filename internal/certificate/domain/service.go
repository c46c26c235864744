package domain

import (
	"context"
	"errors"

	"github.com/gdg-oncampus/certhub/pkg/db/pagination"
)

type CreateRequest struct {
	RecipientName  string  `json:"recipient_name"`
	RecipientEmail *string `json:"recipient_email"`
	EventType      string  `json:"event_type"`
	EventName      string  `json:"event_name"`
	IssueDate      string  `json:"issue_date"`
}

// NotificationOutcome records the best-effort email dispatch so callers
// and tests can observe it independently of the (already durable)
// certificate insert.
type NotificationOutcome struct {
	Attempted bool   `json:"attempted"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

type CreateResult struct {
	Certificate  *Certificate        `json:"certificate"`
	Notification NotificationOutcome `json:"notification"`
}

// BatchError pairs a failed row with the input that produced it.
type BatchError struct {
	Data  CreateRequest `json:"data"`
	Error string        `json:"error"`
}

type BatchResult struct {
	Total        int           `json:"total"`
	Successful   int           `json:"successful"`
	Failed       int           `json:"failed"`
	Certificates []Certificate `json:"certificates"`
	Errors       []BatchError  `json:"errors"`
}

type ListResponse struct {
	pagination.PageInfo
	Certificates []Certificate `json:"certificates"`
}

type ValidationResult struct {
	Valid       bool        `json:"valid"`
	Certificate *PublicView `json:"certificate,omitempty"`
}

type Service interface {
	Create(ctx context.Context, ocid string, req CreateRequest) (*CreateResult, error)
	CreateBatch(ctx context.Context, ocid string, reqs []CreateRequest) (*BatchResult, error)
	ListByIssuer(ctx context.Context, ocid string, page pagination.Page) (*ListResponse, error)

	// Validate is the public lookup; it is read-only and requires no
	// authentication.
	Validate(ctx context.Context, uniqueID string) (*ValidationResult, error)
}

var (
	ErrInvalidRecipientName = errors.New("invalid_recipient_name")
	ErrInvalidEventType     = errors.New("invalid_event_type")
	ErrInvalidEventName     = errors.New("invalid_event_name")
	ErrInvalidIssueDate     = errors.New("invalid_issue_date")
	ErrEmptyBatch           = errors.New("empty_batch")
	ErrNotFound             = errors.New("certificate_not_found")
	ErrIDExhausted          = errors.New("unique_id_exhausted")
)
