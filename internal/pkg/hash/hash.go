package hash

import "fmt"

// Hash hashes secrets and verifies plaintext against a stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

// Password is a hashed password.
type Password struct {
	hashed string
	hasher Hash
}

// IsEqual reports whether plain matches the password.
func (p Password) IsEqual(plain string) bool {
	return p.hasher.Verify(p.hashed, plain)
}

// HashedString returns the stored representation.
func (p Password) HashedString() string {
	return p.hashed
}

// PasswordMaker builds Password values with a fixed hasher.
type PasswordMaker struct {
	hasher Hash
}

// NewPasswordMaker returns a PasswordMaker backed by hasher.
func NewPasswordMaker(hasher Hash) *PasswordMaker {
	return &PasswordMaker{hasher: hasher}
}

// Make returns a Password for raw. When isHashed is true raw is already a
// stored hash and is kept as is; otherwise raw is hashed.
func (m *PasswordMaker) Make(raw string, isHashed bool) (Password, error) {
	if isHashed {
		return Password{hashed: raw, hasher: m.hasher}, nil
	}

	b, err := m.hasher.Hash(raw)
	if err != nil {
		return Password{}, fmt.Errorf("hash password: %w", err)
	}
	return Password{hashed: string(b), hasher: m.hasher}, nil
}
