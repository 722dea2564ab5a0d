// Package authz provides role-based access control backed by Casbin with
// policies persisted through GORM.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// rbacModel is the RBAC model with a keyMatch2 object matcher so policies
// can use path patterns like /api/admin/posts/:id.
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
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Authorizer answers whether a subject may perform an action on an object.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewGormAuthorizer creates an authorizer whose policies live in the given
// database. The casbin_rule table is created on first use.
func NewGormAuthorizer(db *gorm.DB) (*Authorizer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("create gorm adapter: %w", err)
	}

	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load policies: %w", err)
	}

	return &Authorizer{enforcer: enforcer}, nil
}

// Authorize reports whether sub may perform act on obj.
func (a *Authorizer) Authorize(sub, obj, act string) (bool, error) {
	return a.enforcer.Enforce(sub, obj, act)
}

// GrantRole assigns a role to a user subject.
func (a *Authorizer) GrantRole(user, role string) error {
	if _, err := a.enforcer.AddGroupingPolicy(user, role); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}

// AddPolicy permits a subject to perform act on obj.
func (a *Authorizer) AddPolicy(sub, obj, act string) error {
	if _, err := a.enforcer.AddPolicy(sub, obj, act); err != nil {
		return fmt.Errorf("add policy: %w", err)
	}
	return nil
}

// SeedDefaultPolicies installs the baseline role permissions. Existing
// rules are left alone, so the call is safe on every startup.
func (a *Authorizer) SeedDefaultPolicies() error {
	defaults := [][]string{
		{"role:admin", "/api/admin/*", ".*"},
		{"role:editor", "/api/admin/posts", "(GET)|(POST)"},
		{"role:editor", "/api/admin/posts/*", ".*"},
		{"role:editor", "/api/admin/galleries", "(GET)|(POST)"},
		{"role:editor", "/api/admin/galleries/*", ".*"},
	}
	for _, rule := range defaults {
		if _, err := a.enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
			return fmt.Errorf("seed policy %v: %w", rule, err)
		}
	}
	return nil
}
