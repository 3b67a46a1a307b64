package db

import (
	"context"

	"github.com/miempresa/otpgate/internal/mfa/entity"
)

const getUserByEmail = `
SELECT id, email, full_name, secret, password, status, last_used_at
FROM mfa_users
WHERE email = $1
`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx, getUserByEmail, email).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Secret,
		&user.Password,
		&user.Status,
		&user.LastUsedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

const getUserByID = `
SELECT id, email, full_name, secret, password, status, last_used_at
FROM mfa_users
WHERE id = $1
`

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx, getUserByID, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Secret,
		&user.Password,
		&user.Status,
		&user.LastUsedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

const getBackupCodesByUserID = `
SELECT id, user_id, code, used
FROM mfa_backup_codes
WHERE user_id = $1 AND used = FALSE
`

func (s *DB) GetBackupCodesByUserID(ctx context.Context, userID int64) (_ []entity.BackupCode, err error) {
	ctx, span := s.startSpan(ctx, "GetBackupCodesByUserID")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, getBackupCodesByUserID, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var codes []entity.BackupCode
	for rows.Next() {
		var bc entity.BackupCode
		if err = rows.Scan(&bc.ID, &bc.UserID, &bc.Code, &bc.Used); err != nil {
			return nil, s.mapError(err)
		}
		codes = append(codes, bc)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return codes, nil
}
