package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt implements Hash using bcrypt.
//
// With a pepper the plaintext is first reduced to a base64 HMAC-SHA256, so
// the pepper never pushes a long password past bcrypt's 72 byte input limit.
type Bcrypt struct {
	cost   int
	pepper []byte
}

// NewBcrypt returns a bcrypt hasher. A cost outside bcrypt's range falls
// back to bcrypt.DefaultCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: []byte(pepper)}
}

func (h *Bcrypt) input(plaintext string) []byte {
	if len(h.pepper) == 0 {
		return []byte(plaintext)
	}

	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(plaintext))
	sum := mac.Sum(nil)

	out := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(out, sum)
	return out
}

func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(h.input(plaintext), h.cost)
}

func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), h.input(plaintext)) == nil
}
