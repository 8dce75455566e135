// Package authz answers "may this kind of user do act on obj" from a casbin
// policy loaded at startup.
package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
	"github.com/samber/lo"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// DefaultPolicies grant admins the overrides the application relies on. The
// casbin_rule migration seeds the same rules.
var DefaultPolicies = []string{
	"p, admin, book, delete",
	"p, admin, comment, delete",
	"p, admin, user, delete",
}

// Authorizer checks permissions.
type Authorizer interface {
	Allowed(sub, obj, act string) (bool, error)
}

// Enforcer is a casbin backed Authorizer.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

// New builds an Enforcer over the policies stored behind adapter, then adds
// seeds given in casbin CSV form, e.g. "p, admin, book, delete" or
// "g, support, admin". Seeds are written through to the adapter. A nil
// adapter keeps the policy in memory. Empty lines are ignored.
func New(adapter persist.Adapter, seeds []string) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz: model: %w", err)
	}

	policies, groupings, err := parse(seeds)
	if err != nil {
		return nil, err
	}

	var e *casbin.Enforcer
	if adapter == nil {
		e, err = casbin.NewEnforcer(m)
	} else {
		e, err = casbin.NewEnforcer(m, adapter)
	}
	if err != nil {
		return nil, fmt.Errorf("authz: enforcer: %w", err)
	}

	// one rule at a time: AddPolicies drops the whole batch when any rule exists
	for _, p := range policies {
		if _, err := e.AddPolicy(lo.ToAnySlice(p)...); err != nil {
			return nil, fmt.Errorf("authz: add policy %v: %w", p, err)
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(lo.ToAnySlice(g)...); err != nil {
			return nil, fmt.Errorf("authz: add grouping %v: %w", g, err)
		}
	}

	return &Enforcer{enforcer: e}, nil
}

// Allowed reports whether sub may perform act on obj.
func (e *Enforcer) Allowed(sub, obj, act string) (bool, error) {
	return e.enforcer.Enforce(sub, obj, act)
}

func parse(lines []string) (policies, groupings [][]string, err error) {
	for _, line := range lines {
		fields := lo.FilterMap(strings.Split(line, ","), func(f string, _ int) (string, bool) {
			f = strings.TrimSpace(f)
			return f, f != ""
		})
		if len(fields) == 0 {
			continue
		}

		switch {
		case fields[0] == "p" && len(fields) == 4:
			policies = append(policies, fields[1:])
		case fields[0] == "g" && len(fields) == 3:
			groupings = append(groupings, fields[1:])
		default:
			return nil, nil, fmt.Errorf("authz: malformed policy line %q", line)
		}
	}
	return policies, groupings, nil
}
