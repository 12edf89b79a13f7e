package deptrequest

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role は操作者のロールです。
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleHRAdmin     Role = "HR_ADMIN"
	RoleHR          Role = "HR"
	RoleManager     Role = "MANAGER"
	RoleDeptManager Role = "DEPT_MANAGER"
	RoleEmployee    Role = "EMPLOYEE"
)

// Actor は認証済みの操作者です。ID とロール集合のみを扱います。
type Actor struct {
	ID    string
	Roles []Role
}

// NewActor はロール名を正規化して Actor を生成します。
func NewActor(id string, roles []string) Actor {
	seen := make(map[Role]struct{}, len(roles))
	normalized := make([]Role, 0, len(roles))
	for _, raw := range roles {
		role := Role(strings.ToUpper(strings.TrimSpace(raw)))
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		normalized = append(normalized, role)
	}
	return Actor{ID: strings.TrimSpace(id), Roles: normalized}
}

// Authenticated は操作者が識別済みかを返します。
func (a Actor) Authenticated() bool {
	return a.ID != ""
}

const (
	policyObject = "department_request"

	actionView   = "view"
	actionDecide = "decide"
	actionDelete = "delete"
)

const policyModelText = `
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

// Policy は部署異動申請に対する認可判定を行います。
// ロールの権限は casbin の RBAC モデルで表現し、申請者本人かどうかはここで判定します。
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewPolicy は既定のロール定義で Policy を生成します。
//
//	HR            view / decide / delete
//	HR_ADMIN      HR を継承
//	ADMIN         HR_ADMIN を継承
//	MANAGER       view
//	DEPT_MANAGER  MANAGER を継承
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(policyModelText)
	if err != nil {
		return nil, fmt.Errorf("deptrequest: policy model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("deptrequest: policy enforcer: %w", err)
	}

	rules := [][]string{
		{string(RoleHR), policyObject, actionView},
		{string(RoleHR), policyObject, actionDecide},
		{string(RoleHR), policyObject, actionDelete},
		{string(RoleManager), policyObject, actionView},
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("deptrequest: add policies: %w", err)
	}

	inheritance := [][]string{
		{string(RoleHRAdmin), string(RoleHR)},
		{string(RoleAdmin), string(RoleHRAdmin)},
		{string(RoleDeptManager), string(RoleManager)},
	}
	if _, err := enforcer.AddGroupingPolicies(inheritance); err != nil {
		return nil, fmt.Errorf("deptrequest: add role inheritance: %w", err)
	}

	return &Policy{enforcer: enforcer}, nil
}

// CanView は申請の閲覧可否を返します。人事系ロールまたは申請者本人に許可されます。
func (p *Policy) CanView(actor Actor, req *Request) bool {
	if !actor.Authenticated() || req == nil {
		return false
	}
	return p.allowed(actor, actionView) || isRequester(actor, req)
}

// CanViewAll は他者の申請を含む一覧の閲覧可否を返します。
func (p *Policy) CanViewAll(actor Actor) bool {
	if !actor.Authenticated() {
		return false
	}
	return p.allowed(actor, actionView)
}

// CanTransition は承認・却下の可否を返します。申請者本人は常に不可です。
func (p *Policy) CanTransition(actor Actor, req *Request) bool {
	if !actor.Authenticated() || req == nil {
		return false
	}
	if isRequester(actor, req) {
		return false
	}
	return p.allowed(actor, actionDecide)
}

// CanDelete は申請の削除可否を返します。人事系ロールと申請者本人 (取り下げ) に許可されます。
func (p *Policy) CanDelete(actor Actor, req *Request) bool {
	if !actor.Authenticated() || req == nil {
		return false
	}
	return p.allowed(actor, actionDelete) || isRequester(actor, req)
}

func (p *Policy) allowed(actor Actor, action string) bool {
	for _, role := range actor.Roles {
		ok, err := p.enforcer.Enforce(string(role), policyObject, action)
		if err != nil {
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

func isRequester(actor Actor, req *Request) bool {
	return actor.ID != "" && actor.ID == req.RequesterID
}
