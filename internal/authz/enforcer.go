package authz

import (
	"strings"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"

	"pto-track/internal/domain"
)

// Route-level resources and actions enforced through casbin. Record-level
// decisions (ownership, status) stay in the rule predicates above.
const (
	ResourceAbsences  = "absences"
	ResourceGroups    = "groups"
	ResourceResources = "resources"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionDecide = "decide"
	ActionManage = "manage"
)

const modelText = `
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

// Enforcer answers route-level role/resource/action questions.
type Enforcer struct {
	e *casbin.Enforcer
}

// NewEnforcer builds the in-memory policy for the closed role set. Roles
// inherit downward: Admin > Manager > Approver > Employee.
func NewEnforcer() (*Enforcer, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	groupings := [][]string{
		{"admin", "manager"},
		{"manager", "approver"},
		{"approver", "employee"},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	policies := [][]string{
		{"employee", ResourceAbsences, ActionRead},
		{"employee", ResourceAbsences, ActionCreate},
		{"approver", ResourceAbsences, ActionDecide},
		{"admin", ResourceGroups, ActionManage},
		{"admin", ResourceResources, ActionManage},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &Enforcer{e: e}, nil
}

// Enforce reports whether the role may perform action on resource.
func (en *Enforcer) Enforce(role domain.Role, resource, action string) (bool, error) {
	return en.e.Enforce(strings.ToLower(role.String()), resource, action)
}
