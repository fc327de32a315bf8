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
	"strings"
	"testing"
)

func newGlobalEngine() *GlobalEngine {
	return NewGlobalEngine(DefaultRankTable(), NewGlobalStatementRegistry())
}

func TestGlobalEngine_IsActionAllowed(t *testing.T) {
	engine := newGlobalEngine()

	tests := []struct {
		name      string
		actor     string
		target    string
		newRole   string
		allowed   bool
		reasonHas string
	}{
		{name: "admin bans user", actor: RoleAdmin, target: RoleUser, allowed: true},
		{name: "admin deletes owner", actor: RoleAdmin, target: RoleOwner, allowed: false, reasonHas: "rank"},
		{name: "owner grants super_owner", actor: RoleOwner, target: RoleUser, newRole: RoleSuperOwner, allowed: false, reasonHas: "outranks"},
		{name: "super_owner targets super_owner", actor: RoleSuperOwner, target: RoleSuperOwner, allowed: false, reasonHas: "super_owner"},
		{name: "owner demotes admin", actor: RoleOwner, target: RoleAdmin, newRole: RoleUser, allowed: true},
		{name: "admin acts on peer", actor: RoleAdmin, target: RoleAdmin, allowed: false, reasonHas: "rank"},
		{name: "user acts on user", actor: RoleUser, target: RoleUser, allowed: false},
		{name: "super_owner promotes user to owner", actor: RoleSuperOwner, target: RoleUser, newRole: RoleOwner, allowed: true},
		{name: "unknown actor fails closed", actor: "root", target: RoleUser, allowed: false},
		{name: "unknown target ranks as user", actor: RoleAdmin, target: "ghost", allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.IsActionAllowed(tt.actor, tt.target, tt.newRole)
			if got.Allowed != tt.allowed {
				t.Fatalf("allowed = %v, want %v (reason: %s)", got.Allowed, tt.allowed, got.Reason)
			}
			if !tt.allowed && tt.reasonHas != "" && !strings.Contains(got.Reason, tt.reasonHas) {
				t.Errorf("reason %q does not mention %q", got.Reason, tt.reasonHas)
			}
		})
	}
}

// Exhaustively checks the rank invariant: an allowed action implies
// the actor strictly outranks the target, and super_owner is never a
// valid target.
func TestGlobalEngine_RankInvariant(t *testing.T) {
	engine := newGlobalEngine()
	ranks := DefaultRankTable()
	roles := []string{RoleUser, RoleAdmin, RoleOwner, RoleSuperOwner, "unknown"}

	for _, actor := range roles {
		for _, target := range roles {
			got := engine.IsActionAllowed(actor, target, "")
			if target == RoleSuperOwner && got.Allowed {
				t.Errorf("actor %s allowed to act on super_owner", actor)
			}
			if got.Allowed && ranks.Rank(actor) <= ranks.Rank(target) {
				t.Errorf("allowed %s -> %s despite rank %d <= %d",
					actor, target, ranks.Rank(actor), ranks.Rank(target))
			}
		}
	}
}

// An allowed role change implies the granted rank does not exceed the
// actor's own rank.
func TestGlobalEngine_NewRoleInvariant(t *testing.T) {
	engine := newGlobalEngine()
	ranks := DefaultRankTable()
	roles := []string{RoleUser, RoleAdmin, RoleOwner, RoleSuperOwner}

	for _, actor := range roles {
		for _, newRole := range roles {
			got := engine.IsActionAllowed(actor, RoleUser, newRole)
			if got.Allowed && ranks.Rank(newRole) > ranks.Rank(actor) {
				t.Errorf("actor %s allowed to grant %s", actor, newRole)
			}
		}
	}
}

func TestGlobalEngine_HasCapability(t *testing.T) {
	engine := newGlobalEngine()

	if d := engine.HasCapability(RoleAdmin, ResourceOrganization, ActionCreate); !d.Allowed {
		t.Errorf("admin should create organizations: %s", d.Reason)
	}
	if d := engine.HasCapability(RoleAdmin, ResourceOrganization, ActionDelete); d.Allowed {
		t.Error("admin must not delete organizations")
	}
	if d := engine.HasCapability(RoleUser, ResourceAdminUsers, ActionCreate); d.Allowed {
		t.Error("user must not manage admin accounts")
	}
	if d := engine.HasCapability(RoleSuperOwner, ResourceOwnerUsers, ActionDelete); !d.Allowed {
		t.Errorf("super_owner should manage owner accounts: %s", d.Reason)
	}
	if d := engine.HasCapability("ghost", ResourceOrganization, ActionCreate); d.Allowed {
		t.Error("unknown role must fail closed")
	}
}
