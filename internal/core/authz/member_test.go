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

func newTestMemberEngine(members *fakeMemberSource, custom *fakeCustomRoleSource) *MemberEngine {
	return NewMemberEngine(newTestResolver(members, custom))
}

func TestMemberEngine_GuestCannotUpdateMembers(t *testing.T) {
	engine := newTestMemberEngine(
		&fakeMemberSource{roles: map[string]string{"org-1/u-1": "guest"}},
		&fakeCustomRoleSource{},
	)

	read, err := engine.HasPermission(context.Background(), "org-1", "u-1",
		NewStatement(map[string][]string{ResourceMembers: {ActionRead}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !read.Allowed {
		t.Errorf("guest should read members: %s", read.Reason)
	}

	update, err := engine.HasPermission(context.Background(), "org-1", "u-1",
		NewStatement(map[string][]string{ResourceMembers: {ActionUpdate}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if update.Allowed {
		t.Error("guest must not update members")
	}
}

func TestMemberEngine_RequiresAllPairs(t *testing.T) {
	engine := newTestMemberEngine(
		&fakeMemberSource{roles: map[string]string{"org-1/u-1": RoleAdmin}},
		&fakeCustomRoleSource{},
	)

	// admin holds organization:update but not organization:delete
	decision, err := engine.HasPermission(context.Background(), "org-1", "u-1",
		NewStatement(map[string][]string{ResourceOrganization: {ActionUpdate, ActionDelete}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Error("partial coverage must deny")
	}
}

func TestMemberEngine_MissingOrgDenies(t *testing.T) {
	engine := newTestMemberEngine(&fakeMemberSource{}, &fakeCustomRoleSource{})

	decision, err := engine.HasPermission(context.Background(), "", "u-1",
		NewStatement(map[string][]string{ResourceMembers: {ActionRead}}))
	if err != nil {
		t.Fatalf("missing org must deny, not error: %v", err)
	}
	if decision.Allowed {
		t.Error("missing organization context must deny")
	}
}

func TestMemberEngine_NonMemberDenies(t *testing.T) {
	engine := newTestMemberEngine(&fakeMemberSource{roles: map[string]string{}}, &fakeCustomRoleSource{})

	decision, err := engine.HasPermission(context.Background(), "org-1", "stranger",
		NewStatement(map[string][]string{ResourceMembers: {ActionRead}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Error("non-member must be denied")
	}
}

func TestMemberEngine_OwnerCoversEverything(t *testing.T) {
	engine := newTestMemberEngine(
		&fakeMemberSource{roles: map[string]string{"org-1/u-1": RoleOwner}},
		&fakeCustomRoleSource{},
	)

	decision, err := engine.HasPermission(context.Background(), "org-1", "u-1",
		NewStatement(map[string][]string{
			ResourceOrganization:  {ActionUpdate, ActionDelete},
			ResourceFinance:       {"approve", "view_balance"},
			ResourceAccessControl: {ActionCreate, ActionDelete},
		}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Errorf("owner should cover all org capabilities: %s", decision.Reason)
	}
}
