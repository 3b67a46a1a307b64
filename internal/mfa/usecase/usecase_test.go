package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/miempresa/otpgate/internal/pkg/hash"
	"github.com/miempresa/otpgate/internal/pkg/instrument"
	"github.com/miempresa/otpgate/internal/pkg/jwt"
	"github.com/miempresa/otpgate/internal/pkg/mfacrypto"
	"github.com/miempresa/otpgate/internal/pkg/otp"
	"github.com/miempresa/otpgate/internal/pkg/qr"
	"github.com/miempresa/otpgate/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory repoDB keyed by user id and email.
type fakeRepo struct {
	users       map[int64]*entity.User
	byEmail     map[string]*entity.User
	backupCodes map[int64][]entity.BackupCode
	lastUsedAt  map[int64]time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:       map[int64]*entity.User{},
		byEmail:     map[string]*entity.User{},
		backupCodes: map[int64][]entity.BackupCode{},
		lastUsedAt:  map[int64]time.Time{},
	}
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetBackupCodesByUserID(_ context.Context, userID int64) ([]entity.BackupCode, error) {
	var out []entity.BackupCode
	for _, bc := range f.backupCodes[userID] {
		if !bc.Used {
			out = append(out, bc)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, user entity.NewUser) (bool, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return false, nil
	}
	u := &entity.User{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Secret:   user.Secret,
		Password: user.Password,
		Status:   user.Status,
	}
	f.users[u.ID] = u
	f.byEmail[u.Email] = u
	return true, nil
}

func (f *fakeRepo) CreateBackupCodes(_ context.Context, codes []entity.BackupCode) error {
	for _, bc := range codes {
		f.backupCodes[bc.UserID] = append(f.backupCodes[bc.UserID], bc)
	}
	return nil
}

func (f *fakeRepo) UpdateLastUsedAt(_ context.Context, userID int64, at time.Time) error {
	f.lastUsedAt[userID] = at
	return nil
}

func (f *fakeRepo) MarkBackupCodeUsed(_ context.Context, bcID, userID int64) (bool, error) {
	codes := f.backupCodes[userID]
	for i := range codes {
		if codes[i].ID == bcID && !codes[i].Used {
			codes[i].Used = true
			return true, nil
		}
	}
	return false, nil
}

// memChallenges is an in-memory challengeStore; TTLs are ignored.
type memChallenges struct {
	entries map[string]entity.Challenge
}

func newMemChallenges() *memChallenges {
	return &memChallenges{entries: map[string]entity.Challenge{}}
}

func (m *memChallenges) Put(_ context.Context, hashedToken string, ch entity.Challenge, _ time.Duration) error {
	m.entries[hashedToken] = ch
	return nil
}

func (m *memChallenges) Take(_ context.Context, hashedToken string) (*entity.Challenge, error) {
	ch, ok := m.entries[hashedToken]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	delete(m.entries, hashedToken)
	return &ch, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type seqNumberID struct{ n atomic.Int64 }

func (s *seqNumberID) Generate() int64 { return s.n.Add(1) }

type seqStringID struct{ n atomic.Int64 }

func (s *seqStringID) Generate() string { return fmt.Sprintf("token-%d", s.n.Add(1)) }

type fixture struct {
	uc         *Usecase
	repo       *fakeRepo
	challenges *memChallenges
	cfg        *fakeConfig
	totp       *otp.TOTP
	encryptor  mfacrypto.Encryptor
	bcrypt     hash.Hash
	argon2id   hash.Hash
	clock      fixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := fixedClock{at: time.Unix(1700000000, 0)}
	uuids := &seqStringID{}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:     "otpgate-test",
		Audiences:  []string{"otpgate"},
		TTLMinutes: 15 * time.Minute,
		Clock:      clk,
		UUID:       uuids,
	})
	require.NoError(t, err)

	repo := newFakeRepo()
	challenges := newMemChallenges()
	cfg := &fakeConfig{strings: map[string]string{}}
	totp := otp.NewTOTP("miempresa", 30, 1)
	encryptor := mfacrypto.NewAESGCMEncryptor(mfacrypto.StaticKeyProvider{
		KeyBytes: []byte("01234567890123456789012345678901"),
	})
	bc := hash.NewBcrypt(4, "")
	argon := hash.NewArgon2id("")

	uc := New(Dependency{
		RepoDB:          repo,
		Challenges:      challenges,
		Validator:       v,
		Config:          cfg,
		HMAC:            hash.NewHMACSHA256("test-hmac-secret"),
		Bcrypt:          bc,
		Argon2ID:        argon,
		MFAEncryptor:    encryptor,
		MFARecoveryCode: mfacrypto.NewRecoveryCode(),
		UID:             &seqNumberID{},
		OID:             &seqStringID{},
		Totp:            totp,
		QR:              qr.NewPNG(),
		Clock:           clk,
		JWT:             signer,
		Instrument:      instrument.NewNoop(),
	})

	return &fixture{
		uc:         uc,
		repo:       repo,
		challenges: challenges,
		cfg:        cfg,
		totp:       totp,
		encryptor:  encryptor,
		bcrypt:     bc,
		argon2id:   argon,
		clock:      clk,
	}
}

// addUser provisions a directory entry with an encrypted seed and a bcrypt
// password, returning its id and plaintext seed.
func (f *fixture) addUser(t *testing.T, email, password string, status entity.UserStatus) (int64, string) {
	t.Helper()

	seed, err := otp.GenerateSecret(otp.DefaultSecretBytes)
	require.NoError(t, err)

	id := int64(len(f.repo.users) + 1)

	ciphertext, err := f.encryptor.Encrypt([]byte(seed), mfacrypto.Scope{
		UserID:  id,
		Purpose: mfacrypto.PurposeOTPSeed,
	})
	require.NoError(t, err)

	pwdHash, err := f.bcrypt.Hash(password)
	require.NoError(t, err)

	created, err := f.repo.CreateUser(context.Background(), entity.NewUser{
		ID:       id,
		Email:    email,
		Secret:   ciphertext,
		Password: string(pwdHash),
		Status:   status,
	})
	require.NoError(t, err)
	require.True(t, created)

	return id, seed
}

func (f *fixture) addBackupCode(t *testing.T, userID int64, code string) int64 {
	t.Helper()

	codeHash, err := f.argon2id.Hash(code)
	require.NoError(t, err)

	id := int64(len(f.repo.backupCodes[userID]) + 100)
	require.NoError(t, f.repo.CreateBackupCodes(context.Background(), []entity.BackupCode{
		{ID: id, UserID: userID, Code: string(codeHash)},
	}))

	return id
}

func authContext(userID int64, email string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserEmail: email})
}

// fakeConfig returns zero values except a fixed challenge TTL and whatever
// string keys a test sets.
type fakeConfig struct {
	strings map[string]string
}

func (f *fakeConfig) Close() error                   { return nil }
func (f *fakeConfig) GetSecond(string) time.Duration { return 0 }
func (f *fakeConfig) GetMinute(string) time.Duration { return 5 * time.Minute }
func (f *fakeConfig) GetInt(string) int              { return 0 }
func (f *fakeConfig) GetInt32(string) int32          { return 0 }
func (f *fakeConfig) GetInt64(string) int64          { return 0 }
func (f *fakeConfig) GetUint(string) uint            { return 0 }
func (f *fakeConfig) GetFloat64(string) float64      { return 0 }
func (f *fakeConfig) GetBool(string) bool            { return false }
func (f *fakeConfig) GetString(key string) string    { return f.strings[key] }
func (f *fakeConfig) GetBinary(string) []byte        { return nil }
func (f *fakeConfig) GetArray(string) []string       { return nil }
