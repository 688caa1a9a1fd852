package security

import (
	"crypto/rand"
	"math/big"

	"hotspot-ticketing/internal/domain/ports/adapter"
)

// Charsets are router-compatible: RouterOS hotspot user names and passwords
// accept plain alphanumerics everywhere. Ambiguous glyphs (0/O, 1/l/I) are
// excluded from passwords since payers type them from a receipt.
const (
	usernameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var _ adapter.CredentialGenerator = (*CredentialService)(nil)

// CredentialService generates hotspot credentials from crypto/rand.
type CredentialService struct {
	usernamePrefix string
	usernameLen    int
	passwordLen    int
}

func NewCredentialService(usernamePrefix string) *CredentialService {
	if usernamePrefix == "" {
		usernamePrefix = "hotspot"
	}
	return &CredentialService{
		usernamePrefix: usernamePrefix,
		usernameLen:    8,
		passwordLen:    10,
	}
}

func (s *CredentialService) Username() (string, error) {
	suffix, err := randomString(usernameCharset, s.usernameLen)
	if err != nil {
		return "", err
	}
	return s.usernamePrefix + "-" + suffix, nil
}

func (s *CredentialService) Password() (string, error) {
	return randomString(passwordCharset, s.passwordLen)
}

func randomString(charset string, n int) (string, error) {
	max := big.NewInt(int64(len(charset)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out), nil
}
