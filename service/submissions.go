package service

import (
	"context"
	"time"

	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/response"
	"github.com/mbolis/quick-form/tenant"
)

const DefaultNotifyTimeout = 10 * time.Second

// Result is the outcome of a submission. When OK is false, Errors lists the
// required fields left empty and nothing was stored.
type Result struct {
	OK         bool
	ResponseID string
	Errors     []model.Field
	// Warning is a *NotificationError when the notice failed.
	Warning error
}

type SubmissionService struct {
	store         ResponseStore
	resolver      tenant.Resolver
	notifier      Notifier
	notifyTimeout time.Duration
}

// NewSubmissionService wires the submission pipeline. notifier may be nil.
func NewSubmissionService(store ResponseStore, resolver tenant.Resolver, notifier Notifier, notifyTimeout time.Duration) SubmissionService {
	if notifyTimeout <= 0 {
		notifyTimeout = DefaultNotifyTimeout
	}
	return SubmissionService{store, resolver, notifier, notifyTimeout}
}

// Submit resolves the tenant, validates the response, stores its formatted
// version and notifies the tenant.
//
// Validation failures come back in the Result. The returned error is a
// *tenant.TenantResolutionError or a *model.PersistenceError; in both cases
// the caller still holds the response and may retry.
func (ss SubmissionService) Submit(ctx context.Context, form model.Form, resp model.Response, req tenant.Request) (Result, error) {
	if req.FormID == "" {
		req.FormID = form.ID
	}
	res, err := ss.resolver.Resolve(ctx, req)
	if err != nil {
		return Result{}, err
	}

	if missing := response.Validate(form.Schema, resp); len(missing) > 0 {
		return Result{Errors: missing}, nil
	}

	answers := response.Format(form.Schema, resp)
	id, err := ss.store.InsertResponse(ctx, form.ID, res.TenantID, answers)
	if err != nil {
		return Result{}, persistenceErr("insert_response", err)
	}

	result := Result{OK: true, ResponseID: id}
	if ss.notifier != nil {
		result.Warning = ss.notify(ctx, res.TenantID, form, answers)
	}
	return result, nil
}

// notify runs the notifier detached from the request's cancellation, so a
// respondent closing the page does not abort it, but bounded by the timeout.
func (ss SubmissionService) notify(ctx context.Context, tenantID string, form model.Form, answers model.FormattedResponse) error {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ss.notifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ss.notifier.Notify(nctx, tenantID, form, answers)
	}()

	select {
	case err := <-done:
		if err != nil {
			return &NotificationError{Err: err}
		}
		return nil
	case <-nctx.Done():
		return &NotificationError{TimedOut: true, Err: nctx.Err()}
	}
}
