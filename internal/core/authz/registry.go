// Copyright 2025 Orebase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package authz

// Statement fragments reused across role definitions. Every grant a
// role carries is traceable to one of these explicit fragments.
var (
	// erpStatements covers the operational modules of the platform.
	erpStatements = NewStatement(map[string][]string{
		ResourceSales:      {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceFinance:    {ActionRead, "approve", "reject", ActionDelete, "view_balance"},
		ResourceInventory:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceAssets:     {ActionCreate, ActionRead, ActionUpdate, ActionDelete, "log_activity"},
		ResourceAttendance: {ActionCreate, ActionRead, ActionUpdate},
		ResourceProduction: {ActionCreate, ActionRead},
		ResourceRequests:   {ActionCreate, ActionRead, ActionUpdate},
		ResourceMembers:    {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
	})

	// ownerOrgStatements is the organization management fragment of an owner.
	ownerOrgStatements = NewStatement(map[string][]string{
		ResourceOrganization:  {ActionUpdate, ActionDelete},
		ResourceMember:        {ActionCreate, ActionUpdate, ActionDelete},
		ResourceInvitation:    {ActionCreate, "cancel"},
		ResourceAccessControl: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
	})

	// adminOrgStatements is the organization management fragment of an
	// org admin: like the owner's but without organization delete.
	adminOrgStatements = NewStatement(map[string][]string{
		ResourceOrganization:  {ActionUpdate},
		ResourceMember:        {ActionCreate, ActionUpdate, ActionDelete},
		ResourceInvitation:    {ActionCreate, "cancel"},
		ResourceAccessControl: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
	})

	// adminModuleStatements is the day-to-day module access of an org admin.
	adminModuleStatements = NewStatement(map[string][]string{
		ResourceMembers:    {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceFinance:    {ActionRead, "view_balance"},
		ResourceSales:      {ActionRead, ActionUpdate},
		ResourceAssets:     {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceAttendance: {ActionRead, ActionUpdate},
	})
)

// StatementRegistry resolves statically defined role names to their
// statements. Unknown names resolve to nothing; callers fall back to
// dynamic custom roles or a deny-all statement.
type StatementRegistry struct {
	roles map[string]Statement
}

// NewMemberStatementRegistry builds the registry of static
// organization roles.
func NewMemberStatementRegistry() *StatementRegistry {
	return &StatementRegistry{
		roles: map[string]Statement{
			RoleOwner: erpStatements.Merge(ownerOrgStatements),
			RoleAdmin: adminModuleStatements.Merge(adminOrgStatements),
			"guest": NewStatement(map[string][]string{
				ResourceMembers: {ActionRead},
			}),
		},
	}
}

// NewGlobalStatementRegistry builds the registry of platform role
// capabilities used alongside the rank rules.
func NewGlobalStatementRegistry() *StatementRegistry {
	return &StatementRegistry{
		roles: map[string]Statement{
			RoleSuperOwner: NewStatement(map[string][]string{
				ResourceAdminUsers:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
				ResourceOwnerUsers:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
				ResourceOrganization: {ActionCreate, ActionUpdate, ActionDelete},
			}),
			RoleOwner: NewStatement(map[string][]string{
				ResourceAdminUsers:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
				ResourceOrganization: {ActionCreate, ActionUpdate, ActionDelete},
			}),
			RoleAdmin: NewStatement(map[string][]string{
				ResourceAdminUsers:   {ActionCreate, ActionRead},
				ResourceOrganization: {ActionCreate},
			}),
			RoleUser: NewStatement(nil),
		},
	}
}

// Resolve returns the statement of a statically defined role.
func (r *StatementRegistry) Resolve(roleName string) (Statement, bool) {
	statement, ok := r.roles[roleName]
	return statement, ok
}

// Roles returns the statically defined role names.
func (r *StatementRegistry) Roles() []string {
	names := make([]string, 0, len(r.roles))
	for name := range r.roles {
		names = append(names, name)
	}
	return names
}
