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

// Package authz implements the two-tier access control model: a global
// user-role hierarchy for platform administration and a per-organization
// role/statement system for tenant-scoped actions.
package authz

// Global user roles, ordered by authority.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
	RoleSuperOwner = "super_owner"
)

// AdminRoles lists the global roles with platform administration access.
var AdminRoles = []string{RoleAdmin, RoleOwner, RoleSuperOwner}

// RankTable totally orders global roles by numeric power.
// Higher rank means more authority.
type RankTable map[string]int

// DefaultRankTable returns the platform role ranking. Loaded once at
// startup and never mutated afterwards.
func DefaultRankTable() RankTable {
	return RankTable{
		RoleUser:       0,
		RoleAdmin:      1,
		RoleOwner:      2,
		RoleSuperOwner: 3,
	}
}

// Rank returns the rank of role. Unknown roles rank as user, the
// least privileged default.
func (t RankTable) Rank(role string) int {
	if rank, ok := t[role]; ok {
		return rank
	}
	return 0
}
