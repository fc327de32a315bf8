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

import "context"

// RoleRef identifies a member role as either a statically defined role
// or an organization-scoped custom role.
type RoleRef struct {
	kind  roleKind
	name  string
	orgId string
}

type roleKind int

const (
	roleStatic roleKind = iota
	roleCustom
)

// StaticRole references a role from the static registry.
func StaticRole(name string) RoleRef {
	return RoleRef{kind: roleStatic, name: name}
}

// CustomRole references a role defined by an organization.
func CustomRole(orgId, name string) RoleRef {
	return RoleRef{kind: roleCustom, name: name, orgId: orgId}
}

func (r RoleRef) Name() string   { return r.name }
func (r RoleRef) IsCustom() bool { return r.kind == roleCustom }

// MemberSource supplies the active (non tombstoned) membership of a
// user within an organization.
type MemberSource interface {
	MemberRole(ctx context.Context, orgId, userId string) (role string, found bool, err error)
}

// CustomRoleSource supplies organization-defined role statements.
type CustomRoleSource interface {
	CustomRoleStatement(ctx context.Context, orgId, roleName string) (Statement, bool, error)
}

// RoleResolver produces the effective statement of a member. Static
// roles resolve from the registry; anything else is treated as a
// custom role of the organization.
type RoleResolver struct {
	registry *StatementRegistry
	members  MemberSource
	custom   CustomRoleSource
}

func NewRoleResolver(registry *StatementRegistry, members MemberSource, custom CustomRoleSource) *RoleResolver {
	return &RoleResolver{registry: registry, members: members, custom: custom}
}

// Classify maps a member's stored role name to a typed reference.
func (r *RoleResolver) Classify(orgId, roleName string) RoleRef {
	if _, ok := r.registry.Resolve(roleName); ok {
		return StaticRole(roleName)
	}
	return CustomRole(orgId, roleName)
}

// ResolveEffectiveStatement returns the statement governing userId
// within orgId. A missing membership yields (nil, false); a membership
// whose role resolves nowhere yields an empty deny-all statement,
// never an error.
func (r *RoleResolver) ResolveEffectiveStatement(ctx context.Context, orgId, userId string) (Statement, bool, error) {
	roleName, found, err := r.members.MemberRole(ctx, orgId, userId)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	statement, err := r.ResolveRole(ctx, r.Classify(orgId, roleName))
	if err != nil {
		return nil, false, err
	}
	return statement, true, nil
}

// ResolveRole resolves a typed role reference to its statement.
// Unresolvable references yield an empty deny-all statement.
func (r *RoleResolver) ResolveRole(ctx context.Context, ref RoleRef) (Statement, error) {
	if !ref.IsCustom() {
		if statement, ok := r.registry.Resolve(ref.name); ok {
			return statement, nil
		}
		return NewStatement(nil), nil
	}

	statement, ok, err := r.custom.CustomRoleStatement(ctx, ref.orgId, ref.name)
	if err != nil {
		return nil, err
	}
	if !ok {
		// absence of a role is never full access
		return NewStatement(nil), nil
	}
	return statement, nil
}
