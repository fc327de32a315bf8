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
	"context"
	"testing"
)

func newTestGateway(members *fakeMemberSource, custom *fakeCustomRoleSource) *Gateway {
	return ProvideGateway(members, custom)
}

func TestGateway_GlobalAndEngineAgree(t *testing.T) {
	gateway := newTestGateway(&fakeMemberSource{}, &fakeCustomRoleSource{})
	engine := newGlobalEngine()

	roles := []string{RoleUser, RoleAdmin, RoleOwner, RoleSuperOwner}
	for _, actor := range roles {
		for _, target := range roles {
			want := engine.IsActionAllowed(actor, target, "")
			got := gateway.CheckGlobal(actor, target, "")
			if got != want {
				t.Errorf("gateway diverged from engine for %s -> %s: %v vs %v",
					actor, target, got, want)
			}
		}
	}
}

func TestGateway_CheckMember(t *testing.T) {
	gateway := newTestGateway(
		&fakeMemberSource{roles: map[string]string{"org-1/u-1": "guest"}},
		&fakeCustomRoleSource{},
	)

	decision, err := gateway.CheckMember(context.Background(), "org-1", "u-1",
		NewStatement(map[string][]string{ResourceMembers: {ActionUpdate}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Error("guest must not update members through the gateway")
	}
	if decision.Reason == "" {
		t.Error("denial must carry a reason")
	}
}

func TestGateway_CheckGlobalCapability(t *testing.T) {
	gateway := newTestGateway(&fakeMemberSource{}, &fakeCustomRoleSource{})

	if d := gateway.CheckGlobalCapability(RoleOwner, ResourceAdminUsers, ActionUpdate); !d.Allowed {
		t.Errorf("owner should edit admins: %s", d.Reason)
	}
	if d := gateway.CheckGlobalCapability(RoleAdmin, ResourceOwnerUsers, ActionUpdate); d.Allowed {
		t.Error("admin must not edit owners")
	}
}
