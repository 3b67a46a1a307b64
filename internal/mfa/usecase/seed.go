package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/mfacrypto"
	"github.com/miempresa/otpgate/internal/pkg/otp"
)

type seedUser struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
}

// Seed bootstraps the user directory from a JSON file. It is idempotent:
// users whose email already exists are skipped, so it is safe to run on
// every startup.
func (s *Usecase) Seed(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Seed")
	defer span.End()

	path := strings.TrimSpace(s.cfg.GetString("modules.mfa.seed.file"))
	if path == "" {
		return nil
	}

	// #nosec G304 -- path is from trusted config file.
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file %q: %w", path, err)
	}

	var users []seedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return fmt.Errorf("parse seed file %q: %w", path, err)
	}

	for _, su := range users {
		if err := s.seedUser(ctx, su); err != nil {
			return fmt.Errorf("seed user %q: %w", su.Email, err)
		}
	}

	return nil
}

func (s *Usecase) seedUser(ctx context.Context, su seedUser) error {
	seed := strings.TrimSpace(su.Secret)
	if seed == "" {
		generated, err := otp.GenerateSecret(otp.DefaultSecretBytes)
		if err != nil {
			return err
		}
		seed = generated
	}

	rawSeed, err := otp.DecodeSecret(seed)
	if err != nil {
		return err
	}
	if err := otp.ValidateSecret(rawSeed); err != nil {
		return err
	}

	userID := s.uid.Generate()

	encryptedSeed, err := s.mfaEncryptor.Encrypt([]byte(seed), mfacrypto.Scope{
		UserID:  userID,
		Purpose: mfacrypto.PurposeOTPSeed,
	})
	if err != nil {
		return err
	}

	passwordHash, err := s.bcrypt.Hash(su.Password)
	if err != nil {
		return err
	}

	created, err := s.repoDB.CreateUser(ctx, entity.NewUser{
		ID:       userID,
		Email:    strings.TrimSpace(su.Email),
		FullName: strings.TrimSpace(su.FullName),
		Secret:   encryptedSeed,
		Password: string(passwordHash),
		Status:   entity.UserStatusActive,
	})
	if err != nil {
		return err
	}

	if !created {
		slog.InfoContext(ctx, "seed user already exists, skipping", "email", su.Email)
		return nil
	}

	codes, err := s.mfaRecoveryCode.Generate()
	if err != nil {
		return err
	}

	backupCodes := make([]entity.BackupCode, 0, len(codes))
	for _, code := range codes {
		codeHash, err := s.argon2id.Hash(code)
		if err != nil {
			return err
		}
		backupCodes = append(backupCodes, entity.BackupCode{
			ID:     s.uid.Generate(),
			UserID: userID,
			Code:   string(codeHash),
		})
	}

	if err := s.repoDB.CreateBackupCodes(ctx, backupCodes); err != nil {
		return err
	}

	// Plaintext codes exist only here; operators hand them to the user.
	slog.InfoContext(ctx, "seeded user directory entry",
		"email", su.Email,
		"user_id", userID,
		"backup_codes", codes,
	)

	return nil
}
