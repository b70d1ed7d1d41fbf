package service

import (
	"context"

	"github.com/mbolis/quick-form/editor"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/tenant"
)

type FormService struct {
	store    Store
	resolver tenant.Resolver
}

func NewFormService(store Store, resolver tenant.Resolver) FormService {
	return FormService{store, resolver}
}

func (fs FormService) resolve(ctx context.Context, req tenant.Request, formID string) (string, error) {
	if formID != "" {
		req.FormID = formID
	}
	res, err := fs.resolver.Resolve(ctx, req)
	if err != nil {
		return "", err
	}
	return res.TenantID, nil
}

func (fs FormService) Create(ctx context.Context, req tenant.Request, form model.Form) (model.Form, error) {
	tenantID, err := fs.resolve(ctx, req, "")
	if err != nil {
		return model.Form{}, err
	}
	form.Schema = form.Schema.Repair()
	if err := form.Schema.Check(); err != nil {
		return model.Form{}, err
	}

	form.ID, err = fs.store.CreateForm(ctx, tenantID, form)
	if err != nil {
		return model.Form{}, persistenceErr("create_form", err)
	}
	form.TenantID = tenantID
	form.Version = 1
	return form, nil
}

func (fs FormService) List(ctx context.Context, req tenant.Request) ([]model.Form, error) {
	tenantID, err := fs.resolve(ctx, req, "")
	if err != nil {
		return nil, err
	}
	forms, err := fs.store.ListForms(ctx, tenantID)
	if err != nil {
		return nil, persistenceErr("list_forms", err)
	}
	return forms, nil
}

func (fs FormService) Load(ctx context.Context, req tenant.Request, formID string) (model.Form, error) {
	tenantID, err := fs.resolve(ctx, req, formID)
	if err != nil {
		return model.Form{}, err
	}
	return fs.load(ctx, tenantID, formID)
}

func (fs FormService) load(ctx context.Context, tenantID, formID string) (model.Form, error) {
	form, err := fs.store.LoadSchema(ctx, tenantID, formID)
	if err != nil {
		return model.Form{}, persistenceErr("load_schema", err)
	}
	form.Schema = form.Schema.Repair()
	return form, nil
}

// Save replaces the whole schema. form.Version must match the stored one.
func (fs FormService) Save(ctx context.Context, req tenant.Request, form model.Form) (model.Form, error) {
	tenantID, err := fs.resolve(ctx, req, form.ID)
	if err != nil {
		return model.Form{}, err
	}
	return fs.save(ctx, tenantID, form)
}

func (fs FormService) save(ctx context.Context, tenantID string, form model.Form) (model.Form, error) {
	form.Schema = form.Schema.Repair()
	if err := form.Schema.Check(); err != nil {
		return model.Form{}, err
	}
	version, err := fs.store.SaveSchema(ctx, tenantID, form)
	if err != nil {
		return model.Form{}, persistenceErr("save_schema", err)
	}
	form.TenantID = tenantID
	form.Version = version
	return form, nil
}

// Edit loads a form, runs fn on an editing session and saves the result.
// The tenant is resolved once for the whole read-modify-write.
func (fs FormService) Edit(ctx context.Context, req tenant.Request, formID string, fn func(*editor.Session) error) (model.Form, *editor.Session, error) {
	tenantID, err := fs.resolve(ctx, req, formID)
	if err != nil {
		return model.Form{}, nil, err
	}
	form, err := fs.load(ctx, tenantID, formID)
	if err != nil {
		return model.Form{}, nil, err
	}

	session := editor.NewSession(form.Schema)
	if err := fn(session); err != nil {
		return model.Form{}, nil, err
	}
	form.Schema = session.Schema

	form, err = fs.save(ctx, tenantID, form)
	if err != nil {
		return model.Form{}, nil, err
	}
	return form, session, nil
}

func (fs FormService) Delete(ctx context.Context, req tenant.Request, formID string) error {
	tenantID, err := fs.resolve(ctx, req, formID)
	if err != nil {
		return err
	}
	if err := fs.store.DeleteForm(ctx, tenantID, formID); err != nil {
		return persistenceErr("delete_form", err)
	}
	return nil
}

func (fs FormService) Responses(ctx context.Context, req tenant.Request, formID string) ([]model.Submission, error) {
	tenantID, err := fs.resolve(ctx, req, formID)
	if err != nil {
		return nil, err
	}
	subs, err := fs.store.ListResponses(ctx, tenantID, formID)
	if err != nil {
		return nil, persistenceErr("list_responses", err)
	}
	return subs, nil
}
