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

import (
	"slices"
	"sort"
)

// Organization resources governed by member statements.
const (
	ResourceSales      = "sales"
	ResourceFinance    = "finance"
	ResourceInventory  = "inventory"
	ResourceAssets     = "assets"
	ResourceAttendance = "attendance"
	ResourceProduction = "production"
	ResourceRequests   = "requests"
	ResourceMembers    = "members"

	// organization management resources
	ResourceOrganization  = "organization"
	ResourceMember        = "member"
	ResourceInvitation    = "invitation"
	ResourceAccessControl = "ac"
)

// Platform resources governed by global statements.
const (
	ResourceAdminUsers = "admin_users"
	ResourceOwnerUsers = "owner_users"
	ResourceUser       = "user"
	ResourceSession    = "session"
)

// Common action names.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Statement maps a resource name to its allowed actions. An action not
// present for a resource is always denied.
type Statement map[string][]string

// NewStatement builds a Statement from resource/action pairs,
// normalizing each action set.
func NewStatement(grants map[string][]string) Statement {
	s := make(Statement, len(grants))
	for resource, actions := range grants {
		s[resource] = normalizeActions(actions)
	}
	return s
}

// Merge unions the receiver with others per resource key. The merge is
// order independent: no operand can shadow a grant of another.
func (s Statement) Merge(others ...Statement) Statement {
	merged := s.Clone()
	for _, other := range others {
		for resource, actions := range other {
			union := append(merged[resource], actions...)
			merged[resource] = normalizeActions(union)
		}
	}
	return merged
}

// HasCapability reports whether the statement grants action on resource.
func (s Statement) HasCapability(resource, action string) bool {
	return slices.Contains(s[resource], action)
}

// Covers reports whether every resource/action pair in required is
// granted by the statement.
func (s Statement) Covers(required Statement) bool {
	for resource, actions := range required {
		for _, action := range actions {
			if !s.HasCapability(resource, action) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the statement.
func (s Statement) Clone() Statement {
	cp := make(Statement, len(s))
	for resource, actions := range s {
		cp[resource] = slices.Clone(actions)
	}
	return cp
}

// Equal reports whether both statements grant exactly the same
// capabilities.
func (s Statement) Equal(other Statement) bool {
	if len(s) != len(other) {
		return false
	}
	for resource, actions := range s {
		otherActions, ok := other[resource]
		if !ok || !slices.Equal(normalizeActions(actions), normalizeActions(otherActions)) {
			return false
		}
	}
	return true
}

func normalizeActions(actions []string) []string {
	out := make([]string, 0, len(actions))
	for _, action := range actions {
		if !slices.Contains(out, action) {
			out = append(out, action)
		}
	}
	sort.Strings(out)
	return out
}
