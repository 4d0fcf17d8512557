package security

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/logging"
)

const (
	// PurposeDelete is the store key for codes gating task deletion.
	PurposeDelete = "delete"

	// DefaultExpiry is how long a generated code stays valid.
	DefaultExpiry = 60 * time.Second

	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// record is the on-disk shape of a pending OTP.
type record struct {
	OTP       string  `json:"otp"`
	ExpiresAt float64 `json:"expires_at"` // Unix seconds
}

// Store persists one pending OTP per purpose key as a single JSON file in
// the cache directory. The file is removed on any validation attempt, which
// is what makes codes single-use.
type Store struct {
	dir    string
	now    func() time.Time
	logger *slog.Logger
}

// NewStore returns a Store rooted at the default cache directory.
func NewStore() *Store {
	return NewStoreAt(config.CacheDir())
}

// NewStoreAt returns a Store rooted at an explicit directory. Used by tests.
func NewStoreAt(dir string) *Store {
	return &Store{
		dir:    dir,
		now:    time.Now,
		logger: slog.Default(),
	}
}

func (s *Store) path(purpose string) string {
	return filepath.Join(s.dir, purpose+"_otp.json")
}

// Generate produces a fresh code for the given purpose, valid for expiry,
// and persists it, overwriting any existing record for that purpose.
func (s *Store) Generate(purpose string, expiry time.Duration) (string, error) {
	code, err := randomCode(codeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	rec := record{
		OTP:       code,
		ExpiresAt: float64(s.now().Add(expiry).UnixMilli()) / 1000,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode OTP record: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path(purpose), data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write OTP record: %w", err)
	}

	return code, nil
}

// Validate checks candidate against the pending record for the purpose.
// The record is deleted as soon as it has been read, before the comparison,
// so every call consumes it: a second attempt with the correct code after a
// failed first attempt returns false.
func (s *Store) Validate(purpose, candidate string) bool {
	path := s.path(purpose)

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	// Consume before comparing. A failed remove means the single-use
	// guarantee cannot be upheld, so the attempt is rejected.
	if err := os.Remove(path); err != nil {
		s.logger.Warn("failed to consume OTP record", logging.Err(err), logging.Operation("otp_validate"))
		return false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return false
	}

	if rec.OTP != candidate {
		return false
	}
	if float64(s.now().UnixMilli())/1000 > rec.ExpiresAt {
		return false
	}
	return true
}

// randomCode draws n characters from the uppercase-letter+digit alphabet
// using a cryptographically secure source.
func randomCode(n int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
