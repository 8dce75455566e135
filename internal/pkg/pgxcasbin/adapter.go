// Package pgxcasbin persists casbin policy rules in PostgreSQL through pgx.
package pgxcasbin

import (
	"context"

	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
)

// Adapter stores and retrieves casbin policies in the casbin_rule table.
type Adapter struct {
	store *store
}

var (
	_ persist.Adapter             = (*Adapter)(nil)
	_ persist.ContextAdapter      = (*Adapter)(nil)
	_ persist.BatchAdapter        = (*Adapter)(nil)
	_ persist.ContextBatchAdapter = (*Adapter)(nil)
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithTableName overrides the default casbin_rule table name.
func WithTableName(tableName string) Option {
	return func(a *Adapter) {
		a.store.setTableName(tableName)
	}
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewAdapter creates an adapter over db. The table is created by migrations.
func NewAdapter(ctx context.Context, db interface {
	Pinger
	Commander
}, opts ...Option) (*Adapter, error) {
	if err := db.Ping(ctx); err != nil {
		return nil, err
	}

	adapter := &Adapter{store: newStore(db)}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter, nil
}

// LoadPolicyCtx loads all policies into the model.
func (a *Adapter) LoadPolicyCtx(ctx context.Context, model model.Model) error {
	lines, err := a.store.selectAll(ctx)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := persist.LoadPolicyArray(line, model); err != nil {
			return err
		}
	}
	return nil
}

// SavePolicyCtx replaces the stored policies with the model's.
func (a *Adapter) SavePolicyCtx(ctx context.Context, model model.Model) error {
	return a.store.replaceAll(ctx, collectRules(model))
}

func (a *Adapter) AddPolicyCtx(ctx context.Context, sec string, ptype string, rule []string) error {
	return a.store.insertRow(ctx, ptype, rule...)
}

func (a *Adapter) RemovePolicyCtx(ctx context.Context, sec string, ptype string, rule []string) error {
	return a.store.deleteRow(ctx, ptype, rule...)
}

func (a *Adapter) RemoveFilteredPolicyCtx(ctx context.Context, sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	return a.store.deleteWhere(ctx, ptype, fieldIndex, fieldValues...)
}

func (a *Adapter) AddPoliciesCtx(ctx context.Context, sec string, ptype string, rules [][]string) error {
	return a.store.batchInsert(ctx, ptype, rules)
}

func (a *Adapter) RemovePoliciesCtx(ctx context.Context, sec string, ptype string, rules [][]string) error {
	return a.store.batchDelete(ctx, ptype, rules)
}

func (a *Adapter) LoadPolicy(model model.Model) error {
	return a.LoadPolicyCtx(context.Background(), model)
}

func (a *Adapter) SavePolicy(model model.Model) error {
	return a.SavePolicyCtx(context.Background(), model)
}

func (a *Adapter) AddPolicy(sec string, ptype string, rule []string) error {
	return a.AddPolicyCtx(context.Background(), sec, ptype, rule)
}

func (a *Adapter) RemovePolicy(sec string, ptype string, rule []string) error {
	return a.RemovePolicyCtx(context.Background(), sec, ptype, rule)
}

func (a *Adapter) RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	return a.RemoveFilteredPolicyCtx(context.Background(), sec, ptype, fieldIndex, fieldValues...)
}

func (a *Adapter) AddPolicies(sec string, ptype string, rules [][]string) error {
	return a.AddPoliciesCtx(context.Background(), sec, ptype, rules)
}

func (a *Adapter) RemovePolicies(sec string, ptype string, rules [][]string) error {
	return a.RemovePoliciesCtx(context.Background(), sec, ptype, rules)
}

func collectRules(model model.Model) [][]string {
	var rules [][]string
	for _, sec := range []string{"p", "g"} {
		for ptype, ast := range model[sec] {
			for _, rule := range ast.Policy {
				rules = append(rules, genRule(ptype, rule))
			}
		}
	}
	return rules
}
