package entity

import "time"

// User is a row of the MFA user directory. Secret holds the AES-GCM
// ciphertext of the Base32 TOTP seed, never the plaintext.
type User struct {
	ID         int64
	Email      string
	FullName   string
	Secret     []byte
	Password   string
	Status     UserStatus
	LastUsedAt *time.Time
}

// NewUser carries the fields needed to provision a directory entry.
type NewUser struct {
	ID       int64
	Email    string
	FullName string
	Secret   []byte
	Password string
	Status   UserStatus
}

// BackupCode is a single-use fallback credential. Code is an argon2id hash.
type BackupCode struct {
	ID     int64
	UserID int64
	Code   string
	Used   bool
}

// Challenge is the pending login state stored between the password step and
// the code verification step. It lives in the cache under the HMAC of the
// challenge token, so the raw token never leaves the client.
type Challenge struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
