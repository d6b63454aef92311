package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
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
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// defaultPolicies mirror the portal roles: admins manage everything,
// managers handle reports and leave decisions, employees act on their
// own attendance and leave.
var defaultPolicies = [][]string{
	{"admin", "attendance", "*"},
	{"admin", "report", "*"},
	{"admin", "employee", "*"},
	{"admin", "department", "*"},
	{"admin", "leave", "*"},
	{"admin", "holiday", "*"},
	{"admin", "settings", "*"},
	{"admin", "payroll", "*"},
	{"admin", "dashboard", "*"},
	{"manager", "report", "read"},
	{"manager", "leave", "decide"},
	{"manager", "leave", "read"},
	{"manager", "dashboard", "read"},
	{"employee", "attendance", "write"},
	{"employee", "attendance", "read"},
	{"employee", "leave", "write"},
	{"employee", "leave", "read"},
}

var roleInheritance = [][]string{
	{"admin", "manager"},
	{"manager", "employee"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
