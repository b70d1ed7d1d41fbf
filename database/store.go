package database

import (
	"context"
	"database/sql"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mbolis/quick-form/model"
	"github.com/pkg/errors"
)

// Store is the SQLite implementation of the form and response stores.
// Every query filters on the tenant id it was given.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db}
}

func notFound(what, id string) error {
	return errors.Wrapf(model.ErrNotFound, "%s %s", what, id)
}

func (s *Store) LookupOwningTenant(ctx context.Context, formID string) (tenantID string, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT tenant_id FROM form
		WHERE id = ?`,
		formID,
	).Scan(&tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("form", formID)
	}
	return tenantID, errors.Wrap(err, "db.lookup_owning_tenant")
}

func (s *Store) LoadSchema(ctx context.Context, tenantID, formID string) (model.Form, error) {
	form := model.Form{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, version
		FROM form
		WHERE id = ?
			AND tenant_id = ?`,
		formID,
		tenantID,
	).Scan(&form.ID, &form.TenantID, &form.Name, &form.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, notFound("form", formID)
	}
	if err != nil {
		return model.Form{}, errors.Wrap(err, "db.load_schema")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, label, required, options
		FROM form_field
		WHERE form_id = ?
		ORDER BY position`,
		formID,
	)
	if err != nil {
		return model.Form{}, errors.Wrap(err, "db.load_schema.fields")
	}
	defer rows.Close()

	form.Schema = model.Schema{}
	for rows.Next() {
		f := model.Field{}
		var opts string
		err = rows.Scan(&f.ID, &f.Kind, &f.Label, &f.Required, &opts)
		if err != nil {
			return model.Form{}, errors.Wrap(err, "db.load_schema.scan")
		}
		if opts != "" {
			err = json.Unmarshal([]byte(opts), &f.Options)
			if err != nil {
				return model.Form{}, errors.Wrap(err, "db.load_schema.parse_options")
			}
		}
		form.Schema = append(form.Schema, f)
	}
	return form, errors.Wrap(rows.Err(), "db.load_schema.rows")
}

func insertFields(ctx context.Context, tx *sql.Tx, formID string, schema model.Schema) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_field (form_id, position, id, kind, label, required, options)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "db.insert_fields.prepare")
	}
	defer stmt.Close()

	for i, f := range schema {
		var optionsJson []byte
		if f.Options != nil {
			optionsJson, err = json.Marshal(f.Options)
			if err != nil {
				return errors.Wrap(err, "db.insert_fields.encode_options")
			}
		}
		_, err = stmt.ExecContext(ctx, formID, i, f.ID, f.Kind, f.Label, f.Required, string(optionsJson))
		if err != nil {
			return errors.Wrap(err, "db.insert_fields.insert")
		}
	}
	return nil
}

func (s *Store) CreateForm(ctx context.Context, tenantID string, form model.Form) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	formID := model.NewID()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO form (id, tenant_id, name, version) VALUES (?, ?, ?, 1)`,
		formID,
		tenantID,
		form.Name,
	)
	if err != nil {
		return "", errors.Wrap(err, "db.insert_form")
	}

	if err = insertFields(ctx, tx, formID, form.Schema); err != nil {
		return "", err
	}

	return formID, errors.Wrap(tx.Commit(), "db.insert_form.commit")
}

func (s *Store) SaveSchema(ctx context.Context, tenantID string, form model.Form) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE form
		SET
			name = ?,
			version = version+1
		WHERE id = ?
			AND tenant_id = ?
			AND version = ?`,
		form.Name,
		form.ID,
		tenantID,
		form.Version,
	)
	if err != nil {
		return 0, errors.Wrap(err, "db.update_form")
	}
	// optimistic lock
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "db.update_form.verify")
	}
	if n < 1 {
		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT 1 FROM form
			WHERE id = ?
				AND tenant_id = ?`,
			form.ID,
			tenantID,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, notFound("form", form.ID)
		}
		if err != nil {
			return 0, errors.Wrap(err, "db.update_form.verify")
		}
		return 0, errors.Wrapf(model.ErrConflict, "form %s version %d", form.ID, form.Version)
	}

	// replace all fields
	_, err = tx.ExecContext(ctx, `
		DELETE FROM form_field
		WHERE form_id = ?`,
		form.ID,
	)
	if err != nil {
		return 0, errors.Wrap(err, "db.update_form.delete_fields")
	}
	if err = insertFields(ctx, tx, form.ID, form.Schema); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "db.update_form.commit")
	}
	return form.Version + 1, nil
}

func (s *Store) ListForms(ctx context.Context, tenantID string) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, version
		FROM form
		WHERE tenant_id = ?
		ORDER BY name, id`,
		tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.list_forms")
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		f := model.Form{}
		err = rows.Scan(&f.ID, &f.TenantID, &f.Name, &f.Version)
		if err != nil {
			return nil, errors.Wrap(err, "db.list_forms.scan")
		}
		forms = append(forms, f)
	}
	return forms, errors.Wrap(rows.Err(), "db.list_forms.rows")
}

func (s *Store) DeleteForm(ctx context.Context, tenantID, formID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM response
		WHERE form_id = ?
			AND tenant_id = ?`,
		formID,
		tenantID,
	)
	if err != nil {
		return errors.Wrap(err, "db.delete_form.responses")
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM form
		WHERE id = ?
			AND tenant_id = ?`,
		formID,
		tenantID,
	)
	if err != nil {
		return errors.Wrap(err, "db.delete_form")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.delete_form.verify")
	}
	if n < 1 {
		return notFound("form", formID)
	}

	return errors.Wrap(tx.Commit(), "db.delete_form.commit")
}

func (s *Store) InsertResponse(ctx context.Context, formID, tenantID string, answers model.FormattedResponse) (string, error) {
	answersJson, err := json.Marshal(answers)
	if err != nil {
		return "", errors.Wrap(err, "db.insert_response.encode")
	}

	responseID := model.NewID()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO response (id, form_id, tenant_id, time, answers)
		VALUES (?, ?, ?, ?, ?)`,
		responseID,
		formID,
		tenantID,
		time.Now().UTC(),
		string(answersJson),
	)
	if err != nil {
		return "", errors.Wrap(err, "db.insert_response")
	}
	return responseID, nil
}

func (s *Store) ListResponses(ctx context.Context, tenantID, formID string) ([]model.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, tenant_id, time, answers
		FROM response
		WHERE form_id = ?
			AND tenant_id = ?
		ORDER BY time, id`,
		formID,
		tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.list_responses")
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		sub := model.Submission{}
		var answers string
		err = rows.Scan(&sub.ID, &sub.FormID, &sub.TenantID, &sub.Time, &answers)
		if err != nil {
			return nil, errors.Wrap(err, "db.list_responses.scan")
		}
		err = json.Unmarshal([]byte(answers), &sub.Answers)
		if err != nil {
			return nil, errors.Wrap(err, "db.list_responses.parse_answers")
		}
		submissions = append(submissions, sub)
	}
	return submissions, errors.Wrap(rows.Err(), "db.list_responses.rows")
}
