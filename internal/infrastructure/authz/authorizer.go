package authz

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"go.uber.org/zap"
)

//go:embed model.conf
var modelText string

const anyValue = "*"

// Authorizer resolves token identities into actors with their granted capabilities
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
	log      *zap.Logger
}

// NewAuthorizer builds an in-memory enforcer seeded with the pipeline's grants
func NewAuthorizer(log *zap.Logger) (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load authorization model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(policies()); err != nil {
		return nil, fmt.Errorf("seed policies: %w", err)
	}
	return &Authorizer{enforcer: enforcer, log: log.Named("authz")}, nil
}

// Resolve maps raw token claims onto an Actor
func (a *Authorizer) Resolve(id uuid.UUID, name, role, department string) actor.Actor {
	r := actor.ParseRole(role)
	d := actor.ParseDepartment(department)
	return actor.New(id, name, r, d, a.Grants(r, d)...)
}

// Grants returns every capability held by role within department
func (a *Authorizer) Grants(role actor.Role, department actor.Department) []actor.Capability {
	if role == actor.RoleUnknown {
		return nil
	}
	var grants []actor.Capability
	for _, c := range actor.AllCapabilities {
		ok, err := a.enforcer.Enforce(string(role), string(department), string(c))
		if err != nil {
			a.log.Error("capability check failed",
				zap.String("role", string(role)),
				zap.String("department", string(department)),
				zap.String("capability", string(c)),
				zap.Error(err),
			)
			continue
		}
		if ok {
			grants = append(grants, c)
		}
	}
	return grants
}

func policies() [][]string {
	sales := string(actor.DepartmentSales)
	accounts := string(actor.DepartmentAccounts)
	user := string(actor.RoleDepartmentUser)
	head := string(actor.RoleDepartmentHead)
	super := string(actor.RoleSuperAdmin)

	return [][]string{
		// Sales staff raise RFPs and carry them through quotation
		{user, sales, string(actor.CanCreateRfp)},
		{user, sales, string(actor.CanQuoteRfp)},
		{user, sales, string(actor.CanSubmitToAccounts)},
		{user, sales, string(actor.CanViewRfp)},
		{user, sales, string(actor.CanManagePricingDecision)},

		// Sales heads gate approval
		{head, sales, string(actor.CanApproveRfp)},
		{head, sales, string(actor.CanQuoteRfp)},
		{head, sales, string(actor.CanSubmitToAccounts)},
		{head, sales, string(actor.CanViewRfp)},
		{head, sales, string(actor.CanManagePricingDecision)},

		// Accounts, any role
		{anyValue, accounts, string(actor.CanPriceRfp)},
		{anyValue, accounts, string(actor.CanDecideAccounts)},
		{anyValue, accounts, string(actor.CanViewRfp)},

		// Senior management
		{super, anyValue, string(actor.CanDecideSenior)},
		{super, anyValue, string(actor.CanViewRfp)},
	}
}
