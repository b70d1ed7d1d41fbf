package service

import (
	"context"

	"github.com/mbolis/quick-form/model"
)

// SchemaStore persists forms. Every call is scoped to a resolved tenant;
// LoadSchema returns model.ErrNotFound for forms outside it.
type SchemaStore interface {
	LoadSchema(ctx context.Context, tenantID, formID string) (model.Form, error)
	// SaveSchema stores the form if its version is current and returns the
	// new version, or model.ErrConflict.
	SaveSchema(ctx context.Context, tenantID string, form model.Form) (int, error)
	CreateForm(ctx context.Context, tenantID string, form model.Form) (string, error)
	ListForms(ctx context.Context, tenantID string) ([]model.Form, error)
	DeleteForm(ctx context.Context, tenantID, formID string) error
	LookupOwningTenant(ctx context.Context, formID string) (string, error)
}

type ResponseStore interface {
	InsertResponse(ctx context.Context, formID, tenantID string, answers model.FormattedResponse) (string, error)
	ListResponses(ctx context.Context, tenantID, formID string) ([]model.Submission, error)
}

type Store interface {
	SchemaStore
	ResponseStore
}

// Notifier delivers a best-effort notice of a new response. form gives the
// field order for presenting the answers.
type Notifier interface {
	Notify(ctx context.Context, tenantID string, form model.Form, answers model.FormattedResponse) error
}
