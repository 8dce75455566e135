package pgxcasbin

import (
	"context"
	"testing"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/pkaramon/book-store-sub000/internal/pkg/testinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func newEnforcer(t *testing.T, a *Adapter) *casbin.Enforcer {
	t.Helper()
	m, err := model.NewModelFromString(testModel)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m, a)
	require.NoError(t, err)
	return e
}

func TestAdapter_Postgres(t *testing.T) {
	pool := testinfra.Postgres(t)
	ctx := context.Background()

	a, err := NewAdapter(ctx, pool)
	require.NoError(t, err)

	t.Run("seeded admin rules load", func(t *testing.T) {
		e := newEnforcer(t, a)
		ok, err := e.Enforce("admin", "book", "delete")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("added rules survive a reload", func(t *testing.T) {
		e := newEnforcer(t, a)
		_, err := e.AddPolicy("moderator", "comment", "delete")
		require.NoError(t, err)
		_, err = e.AddGroupingPolicy("support", "moderator")
		require.NoError(t, err)

		fresh := newEnforcer(t, a)
		ok, err := fresh.Enforce("support", "comment", "delete")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("duplicate insert is ignored", func(t *testing.T) {
		require.NoError(t, a.AddPolicy("p", "p", []string{"admin", "book", "delete"}))

		rows, err := a.store.selectAll(ctx)
		require.NoError(t, err)
		count := 0
		for _, r := range rows {
			if len(r) == 4 && r[0] == "p" && r[1] == "admin" && r[2] == "book" && r[3] == "delete" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("filtered removal", func(t *testing.T) {
		e := newEnforcer(t, a)
		_, err := e.RemoveFilteredPolicy(0, "moderator")
		require.NoError(t, err)

		fresh := newEnforcer(t, a)
		ok, err := fresh.Enforce("support", "comment", "delete")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save replaces everything", func(t *testing.T) {
		e := newEnforcer(t, a)
		_, err := e.RemovePolicy("admin", "user", "delete")
		require.NoError(t, err)
		require.NoError(t, e.SavePolicy())

		fresh := newEnforcer(t, a)
		ok, err := fresh.Enforce("admin", "user", "delete")
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = fresh.Enforce("admin", "comment", "delete")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestNormalizeRule(t *testing.T) {
	got, err := normalizeRule([]string{"admin", "book"})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "book", "", "", "", ""}, got)

	_, err = normalizeRule(make([]string, 7))
	assert.ErrorIs(t, err, ErrRuleTooLong)

	assert.Equal(t, []string{"p", "admin"}, trimTrailingEmpty([]string{"p", "admin", "", ""}))
}
