// Package tenant resolves which tenant a read or write belongs to.
//
// Resolution tries, in order: an explicit id supplied with the request (an
// embed parameter), the tenant of the caller's session, the tenant owning the
// form being rendered, and finally a reserved fallback id. The first step
// that yields an id wins. Callers resolve once per operation and pass the
// result down; nothing here reads ambient state.
package tenant

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"
)

// DefaultFallback is the reserved tenant written to when nothing else
// resolves.
const DefaultFallback = "00000000-0000-0000-0000-000000000000"

type Source int

const (
	SourceNone Source = iota
	SourceExplicit
	SourceSession
	SourceFormOwner
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceSession:
		return "session"
	case SourceFormOwner:
		return "form_owner"
	case SourceFallback:
		return "fallback"
	}
	return "none"
}

// Request carries everything resolution may use.
type Request struct {
	Explicit string
	Session  string
	FormID   string
}

type Resolution struct {
	TenantID string
	Source   Source
}

type OwnerLookup interface {
	LookupOwningTenant(ctx context.Context, formID string) (string, error)
}

type TenantResolutionError struct {
	Request Request
	// LookupErr is the owner lookup failure, if that step was tried.
	LookupErr error
}

func (e *TenantResolutionError) Error() string {
	msg := "tenant: could not resolve tenant"
	if e.Request.FormID != "" {
		msg += " for form " + e.Request.FormID
	}
	if e.LookupErr != nil {
		msg += ": " + e.LookupErr.Error()
	}
	return msg
}

func (e *TenantResolutionError) Unwrap() error {
	return e.LookupErr
}

type Resolver struct {
	Owners   OwnerLookup
	Fallback string
}

// WellFormed reports whether id has the shape of a tenant id. It does not
// check that the tenant exists.
func WellFormed(id string) bool {
	_, err := uuid.FromString(id)
	return err == nil
}

// canonical returns id in the lowercase hyphenated form, so braced or
// urn:uuid: spellings name the same tenant.
func canonical(id string) (string, bool) {
	u, err := uuid.FromString(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func (r Resolver) Resolve(ctx context.Context, req Request) (Resolution, error) {
	if id, ok := canonical(req.Explicit); ok {
		return Resolution{TenantID: id, Source: SourceExplicit}, nil
	}
	if id := strings.TrimSpace(req.Session); id != "" {
		return Resolution{TenantID: id, Source: SourceSession}, nil
	}

	var lookupErr error
	if req.FormID != "" && r.Owners != nil {
		id, err := r.Owners.LookupOwningTenant(ctx, req.FormID)
		if err == nil && id != "" {
			return Resolution{TenantID: id, Source: SourceFormOwner}, nil
		}
		lookupErr = err
	}

	if r.Fallback != "" {
		return Resolution{TenantID: r.Fallback, Source: SourceFallback}, nil
	}
	return Resolution{}, &TenantResolutionError{Request: req, LookupErr: lookupErr}
}
