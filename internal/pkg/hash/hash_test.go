package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashers(t *testing.T) {
	hashers := map[string]Hash{
		"bcrypt":   NewBcrypt(bcrypt.MinCost, "pepper"),
		"argon2id": NewArgon2id("pepper"),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hashed, err := h.Hash("Secret#pass")
			require.NoError(t, err)

			assert.True(t, h.Verify(string(hashed), "Secret#pass"))
			assert.False(t, h.Verify(string(hashed), "secret#pass"))
			assert.False(t, h.Verify("", "Secret#pass"))
		})
	}
}

func TestPasswordMaker(t *testing.T) {
	maker := NewPasswordMaker(NewBcrypt(bcrypt.MinCost, ""))

	p, err := maker.Make("Secret#pass", false)
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#pass", p.HashedString())
	assert.True(t, p.IsEqual("Secret#pass"))

	stored, err := maker.Make(p.HashedString(), true)
	require.NoError(t, err)
	assert.Equal(t, p.HashedString(), stored.HashedString())
	assert.True(t, stored.IsEqual("Secret#pass"))
	assert.False(t, stored.IsEqual("other"))
}

func TestBcrypt_LongPasswordWithPepper(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "a-long-server-side-pepper")
	long := strings.Repeat("Ab#", 24)

	hashed, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(string(hashed), long))
	assert.False(t, h.Verify(string(hashed), long[:71]))
}

func TestBcrypt_InvalidCostFallsBack(t *testing.T) {
	h := NewBcrypt(0, "")

	hashed, err := h.Hash("Secret#pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hashed)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestArgon2id_KeepsStoredParams(t *testing.T) {
	old := NewArgon2idWithParams(Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}, "pepper")
	hashed, err := old.Hash("Secret#pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(hashed), "$argon2id$v=19$m=8192,t=1,p=1$"))

	assert.True(t, NewArgon2id("pepper").Verify(string(hashed), "Secret#pass"))
	assert.False(t, NewArgon2id("other").Verify(string(hashed), "Secret#pass"))
	assert.False(t, NewArgon2id("pepper").Verify("$bcrypt$x$y$z$w", "Secret#pass"))
}
