package db

import (
	"context"

	"github.com/miempresa/otpgate/internal/mfa/entity"
)

const createUser = `
INSERT INTO mfa_users (id, email, full_name, secret, password, status)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO NOTHING
`

// CreateUser provisions a directory entry. It returns false when the email
// already exists, so seeding can be re-run without duplicating users.
func (s *DB) CreateUser(ctx context.Context, user entity.NewUser) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, createUser,
		user.ID,
		user.Email,
		user.FullName,
		user.Secret,
		user.Password,
		user.Status,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

const createBackupCode = `
INSERT INTO mfa_backup_codes (id, user_id, code)
VALUES ($1, $2, $3)
`

func (s *DB) CreateBackupCodes(ctx context.Context, codes []entity.BackupCode) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBackupCodes")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return s.mapError(err)
	}
	//nolint:errcheck // rollback after commit is a no-op
	defer tx.Rollback(ctx)

	for _, bc := range codes {
		if _, err = tx.Exec(ctx, createBackupCode, bc.ID, bc.UserID, bc.Code); err != nil {
			return s.mapError(err)
		}
	}

	err = s.mapError(tx.Commit(ctx))
	return err
}
