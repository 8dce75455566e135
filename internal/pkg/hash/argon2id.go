package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Params are the Argon2id cost settings. Stored hashes carry their own
// parameters, so changing these only affects new hashes.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params follow the OWASP minimum for Argon2id.
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Argon2id implements Hash with Argon2id in the PHC string format
// $argon2id$v=19$m=...,t=...,p=...$salt$key.
type Argon2id struct {
	params Argon2Params
	pepper string
}

// NewArgon2id returns a hasher using DefaultArgon2Params.
func NewArgon2id(pepper string) *Argon2id {
	return NewArgon2idWithParams(DefaultArgon2Params, pepper)
}

func NewArgon2idWithParams(params Argon2Params, pepper string) *Argon2id {
	return &Argon2id{params: params, pepper: pepper}
}

func (a *Argon2id) Hash(plaintext string) ([]byte, error) {
	p := a.params

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("argon2id salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext+a.pepper), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Appendf(nil, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (a *Argon2id) Verify(hashed, plaintext string) bool {
	p, salt, key, ok := decodeArgon2id(hashed)
	if !ok {
		return false
	}

	got := argon2.IDKey([]byte(plaintext+a.pepper), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, got) == 1
}

func decodeArgon2id(encoded string) (p Argon2Params, salt, key []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, false
	}

	var err error
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, nil, nil, false
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(key) == 0 {
		return p, nil, nil, false
	}
	return p, salt, key, true
}
