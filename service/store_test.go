package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mbolis/quick-form/model"
)

type storedResponse struct {
	FormID   string
	TenantID string
	Answers  model.FormattedResponse
}

// memStore is an in-memory Store for tests.
type memStore struct {
	mu        sync.Mutex
	forms     map[string]model.Form
	responses []storedResponse
	failWrite error
	loads     int
}

func newMemStore(forms ...model.Form) *memStore {
	s := &memStore{forms: map[string]model.Form{}}
	for _, f := range forms {
		s.forms[f.ID] = f
	}
	return s
}

func (s *memStore) LoadSchema(_ context.Context, tenantID, formID string) (model.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	f, ok := s.forms[formID]
	if !ok || f.TenantID != tenantID {
		return model.Form{}, fmt.Errorf("form %s: %w", formID, model.ErrNotFound)
	}
	f.Schema = f.Schema.Clone()
	return f, nil
}

func (s *memStore) SaveSchema(_ context.Context, tenantID string, form model.Form) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return 0, s.failWrite
	}
	cur, ok := s.forms[form.ID]
	if !ok || cur.TenantID != tenantID {
		return 0, model.ErrNotFound
	}
	if cur.Version != form.Version {
		return 0, model.ErrConflict
	}
	form.TenantID = tenantID
	form.Version++
	s.forms[form.ID] = form
	return form.Version, nil
}

func (s *memStore) CreateForm(_ context.Context, tenantID string, form model.Form) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return "", s.failWrite
	}
	form.ID = model.NewID()
	form.TenantID = tenantID
	form.Version = 1
	s.forms[form.ID] = form
	return form.ID, nil
}

func (s *memStore) ListForms(_ context.Context, tenantID string) ([]model.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Form
	for _, f := range s.forms {
		if f.TenantID == tenantID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *memStore) DeleteForm(_ context.Context, tenantID, formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[formID]
	if !ok || f.TenantID != tenantID {
		return model.ErrNotFound
	}
	delete(s.forms, formID)
	return nil
}

func (s *memStore) LookupOwningTenant(_ context.Context, formID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[formID]
	if !ok {
		return "", model.ErrNotFound
	}
	return f.TenantID, nil
}

func (s *memStore) InsertResponse(_ context.Context, formID, tenantID string, answers model.FormattedResponse) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return "", s.failWrite
	}
	s.responses = append(s.responses, storedResponse{formID, tenantID, answers})
	return fmt.Sprintf("resp-%d", len(s.responses)), nil
}

func (s *memStore) ListResponses(_ context.Context, tenantID, formID string) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Submission
	for i, r := range s.responses {
		if r.FormID == formID && r.TenantID == tenantID {
			out = append(out, model.Submission{ID: fmt.Sprintf("resp-%d", i+1), FormID: formID, TenantID: tenantID, Answers: r.Answers})
		}
	}
	return out, nil
}

var errDisk = errors.New("disk I/O error")
