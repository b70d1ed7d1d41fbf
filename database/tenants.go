package database

import (
	"context"
	"database/sql"

	"github.com/mbolis/quick-form/model"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// EnsureTenant returns the id of the tenant with the given name, creating it
// if needed.
func (s *Store) EnsureTenant(ctx context.Context, name string) (tenantID string, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT id FROM tenant
		WHERE name = ?`,
		name,
	).Scan(&tenantID)
	if err == nil {
		return tenantID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", errors.Wrap(err, "db.get_tenant")
	}

	tenantID = model.NewID()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tenant (id, name) VALUES (?, ?)`,
		tenantID,
		name,
	)
	return tenantID, errors.Wrap(err, "db.insert_tenant")
}

// EnsureUser creates or updates a user of the given tenant.
func (s *Store) EnsureUser(ctx context.Context, username, password, tenantID string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "bcrypt.hash")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user (username, password_hash, tenant_id) VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = excluded.password_hash,
			tenant_id = excluded.tenant_id`,
		username,
		hash,
		tenantID,
	)
	return errors.Wrap(err, "db.upsert_user")
}

func (s *Store) AddRecipient(ctx context.Context, tenantID, email string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO tenant_recipient (tenant_id, email) VALUES (?, ?)`,
		tenantID,
		email,
	)
	return errors.Wrap(err, "db.insert_recipient")
}

// NotificationRecipients lists the addresses notified of new responses.
func (s *Store) NotificationRecipients(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM tenant_recipient
		WHERE tenant_id = ?
		ORDER BY email`,
		tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.get_recipients")
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err = rows.Scan(&email); err != nil {
			return nil, errors.Wrap(err, "db.get_recipients.scan")
		}
		emails = append(emails, email)
	}
	return emails, errors.Wrap(rows.Err(), "db.get_recipients.rows")
}
