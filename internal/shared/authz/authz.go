// Package authz centralizes the role and identity gates behind a policy
// object, unit-testable independent of transport.
package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Objects and actions the policy speaks about.
const (
	ObjectProducts = "products"
	ObjectCart     = "cart"

	ActionRead  = "read"
	ActionWrite = "write"
)

// RoleAdmin is the catalog administrator role carried in the x-auth header.
const RoleAdmin = "admin"

const aclModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Authorizer answers authorize(subject, object, action) questions for the
// catalog and cart surfaces.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// New builds the in-memory policy: administrators may write the catalog and
// the single configured cart owner may read and write the cart.
func New(cartOwner string) (*Authorizer, error) {
	m, err := model.NewModelFromString(aclModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	policies := [][]string{
		{SubjectFromRole(RoleAdmin), ObjectProducts, ActionWrite},
		{SubjectFromUser(cartOwner), ObjectCart, ActionRead},
		{SubjectFromUser(cartOwner), ObjectCart, ActionWrite},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Allow reports whether the subject may perform the action on the object.
// Enforcement errors deny.
func (a *Authorizer) Allow(subject, object, action string) bool {
	ok, err := a.enforcer.Enforce(subject, object, action)
	if err != nil {
		return false
	}
	return ok
}

// SubjectFromRole turns an x-auth header value into a policy subject. The
// value is taken verbatim: "ADMIN" and " admin " are not the admin role.
func SubjectFromRole(role string) string {
	if role == "" {
		role = "anonymous"
	}
	return "role:" + role
}

// SubjectFromUser turns an x-user header value into a policy subject.
// Identity values are compared verbatim.
func SubjectFromUser(user string) string {
	if user == "" {
		user = "anonymous"
	}
	return "user:" + user
}
