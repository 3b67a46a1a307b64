package db

import (
	"context"
	"time"
)

const updateLastUsedAt = `
UPDATE mfa_users
SET last_used_at = $2
WHERE id = $1
`

func (s *DB) UpdateLastUsedAt(ctx context.Context, userID int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateLastUsedAt")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, updateLastUsedAt, userID, at)
	err = s.mapError(err)
	return err
}

const markBackupCodeUsed = `
UPDATE mfa_backup_codes
SET used = TRUE
WHERE id = $1 AND user_id = $2 AND used = FALSE
`

// MarkBackupCodeUsed consumes a backup code. It returns false when the code
// was already spent, which callers must treat as a verification failure.
func (s *DB) MarkBackupCodeUsed(ctx context.Context, bcID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkBackupCodeUsed")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, markBackupCodeUsed, bcID, userID)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}
