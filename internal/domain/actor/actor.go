package actor

import (
	"strings"

	"github.com/google/uuid"
)

// Kind distinguishes human callers from named system processes
type Kind string

const (
	KindHuman  Kind = "human"
	KindSystem Kind = "system"
)

// Role is the organisational role carried by a caller's token
type Role string

const (
	RoleDepartmentUser Role = "department_user"
	RoleDepartmentHead Role = "department_head"
	RoleSuperAdmin     Role = "superadmin"
	RoleUnknown        Role = ""
)

// Department is the closed set of departments the pipeline distinguishes
type Department string

const (
	DepartmentSales      Department = "sales"
	DepartmentAccounts   Department = "accounts"
	DepartmentProduction Department = "production"
	DepartmentMarketing  Department = "marketing"
	DepartmentOther      Department = "other"
)

// Capability is a single permission a transition may require
type Capability string

const (
	CanCreateRfp             Capability = "rfp.create"
	CanApproveRfp            Capability = "rfp.approve"
	CanPriceRfp              Capability = "rfp.price"
	CanQuoteRfp              Capability = "rfp.quote"
	CanSubmitToAccounts      Capability = "rfp.submit_accounts"
	CanDecideAccounts        Capability = "rfp.decide_accounts"
	CanDecideSenior          Capability = "rfp.decide_senior"
	CanViewRfp               Capability = "rfp.view"
	CanManagePricingDecision Capability = "pricing_decision.manage"
)

// AllCapabilities lists every capability in a stable order
var AllCapabilities = []Capability{
	CanCreateRfp,
	CanApproveRfp,
	CanPriceRfp,
	CanQuoteRfp,
	CanSubmitToAccounts,
	CanDecideAccounts,
	CanDecideSenior,
	CanViewRfp,
	CanManagePricingDecision,
}

// Actor is the identity every transition is performed by
type Actor struct {
	ID           uuid.UUID
	Kind         Kind
	Name         string
	Role         Role
	Department   Department
	capabilities map[Capability]struct{}
}

// New builds a human actor with the given grants
func New(id uuid.UUID, name string, role Role, department Department, grants ...Capability) Actor {
	return Actor{
		ID:           id,
		Kind:         KindHuman,
		Name:         name,
		Role:         role,
		Department:   department,
		capabilities: toSet(grants),
	}
}

// System builds a named system-process identity, e.g. a payment webhook
func System(name string, grants ...Capability) Actor {
	return Actor{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte("system:"+name)),
		Kind:         KindSystem,
		Name:         name,
		Role:         RoleUnknown,
		Department:   DepartmentOther,
		capabilities: toSet(grants),
	}
}

// Can reports whether the actor has been granted c
func (a Actor) Can(c Capability) bool {
	_, ok := a.capabilities[c]
	return ok
}

// Capabilities returns the granted capabilities in AllCapabilities order
func (a Actor) Capabilities() []Capability {
	out := make([]Capability, 0, len(a.capabilities))
	for _, c := range AllCapabilities {
		if a.Can(c) {
			out = append(out, c)
		}
	}
	return out
}

// RoleLabel is the value recorded as performed_by_role in the audit log
func (a Actor) RoleLabel() string {
	if a.Kind == KindSystem {
		return "system:" + a.Name
	}
	if a.Department == "" || a.Department == DepartmentOther {
		return string(a.Role)
	}
	return string(a.Department) + ":" + string(a.Role)
}

// IsZero reports whether no identity was supplied
func (a Actor) IsZero() bool {
	return a.ID == uuid.Nil
}

// ParseRole maps a token claim onto the closed role set
func ParseRole(s string) Role {
	switch Role(normalize(s)) {
	case RoleDepartmentUser:
		return RoleDepartmentUser
	case RoleDepartmentHead:
		return RoleDepartmentHead
	case RoleSuperAdmin, "super_admin", "super-admin":
		return RoleSuperAdmin
	}
	return RoleUnknown
}

// ParseDepartment maps a token claim onto the closed department set. Matching
// is exact after normalisation; "Sales Department" and "sales" are the same
// department but "presales" is not.
func ParseDepartment(s string) Department {
	d := strings.TrimSuffix(normalize(s), "_department")
	switch Department(d) {
	case DepartmentSales, DepartmentAccounts, DepartmentProduction, DepartmentMarketing:
		return Department(d)
	case "account":
		return DepartmentAccounts
	}
	return DepartmentOther
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

func toSet(grants []Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(grants))
	for _, g := range grants {
		set[g] = struct{}{}
	}
	return set
}
