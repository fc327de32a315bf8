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
	"errors"
	"testing"
)

type fakeMemberSource struct {
	roles map[string]string // orgId/userId -> role
	err   error
}

func (f *fakeMemberSource) MemberRole(_ context.Context, orgId, userId string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	role, ok := f.roles[orgId+"/"+userId]
	return role, ok, nil
}

type fakeCustomRoleSource struct {
	statements map[string]Statement // orgId/roleName -> statement
	err        error
}

func (f *fakeCustomRoleSource) CustomRoleStatement(_ context.Context, orgId, roleName string) (Statement, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	statement, ok := f.statements[orgId+"/"+roleName]
	return statement, ok, nil
}

func newTestResolver(members *fakeMemberSource, custom *fakeCustomRoleSource) *RoleResolver {
	return NewRoleResolver(NewMemberStatementRegistry(), members, custom)
}

func TestRoleResolver_StaticRoleWinsOverCustom(t *testing.T) {
	members := &fakeMemberSource{roles: map[string]string{"org-1/u-1": RoleAdmin}}
	custom := &fakeCustomRoleSource{statements: map[string]Statement{
		// a custom role shadowing a static name must never be consulted
		"org-1/admin": NewStatement(map[string][]string{ResourceFinance: {"approve"}}),
	}}
	resolver := newTestResolver(members, custom)

	statement, found, err := resolver.ResolveEffectiveStatement(context.Background(), "org-1", "u-1")
	if err != nil || !found {
		t.Fatalf("resolve: found=%v err=%v", found, err)
	}
	if statement.HasCapability(ResourceFinance, "approve") {
		t.Error("static admin role was shadowed by a custom role")
	}
	if !statement.HasCapability(ResourceMembers, ActionDelete) {
		t.Error("expected static admin members:delete grant")
	}
}

func TestRoleResolver_CustomRoleFallback(t *testing.T) {
	members := &fakeMemberSource{roles: map[string]string{"org-1/u-2": "timekeeper"}}
	custom := &fakeCustomRoleSource{statements: map[string]Statement{
		"org-1/timekeeper": NewStatement(map[string][]string{
			ResourceAttendance: {ActionCreate, ActionRead, ActionUpdate},
		}),
	}}
	resolver := newTestResolver(members, custom)

	statement, found, err := resolver.ResolveEffectiveStatement(context.Background(), "org-1", "u-2")
	if err != nil || !found {
		t.Fatalf("resolve: found=%v err=%v", found, err)
	}
	if !statement.HasCapability(ResourceAttendance, ActionUpdate) {
		t.Error("expected custom role attendance:update grant")
	}
	if statement.HasCapability(ResourceFinance, ActionRead) {
		t.Error("custom role must not gain undeclared grants")
	}
}

func TestRoleResolver_UnresolvableRoleDeniesAll(t *testing.T) {
	members := &fakeMemberSource{roles: map[string]string{"org-1/u-3": "vanished"}}
	custom := &fakeCustomRoleSource{statements: map[string]Statement{}}
	resolver := newTestResolver(members, custom)

	statement, found, err := resolver.ResolveEffectiveStatement(context.Background(), "org-1", "u-3")
	if err != nil {
		t.Fatalf("resolve must not error on an unknown role: %v", err)
	}
	if !found {
		t.Fatal("membership exists, expected found")
	}
	if len(statement) != 0 {
		t.Errorf("expected empty deny-all statement, got %v", statement)
	}
}

func TestRoleResolver_NoMembership(t *testing.T) {
	resolver := newTestResolver(&fakeMemberSource{roles: map[string]string{}}, &fakeCustomRoleSource{})

	_, found, err := resolver.ResolveEffectiveStatement(context.Background(), "org-1", "stranger")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected no statement for a non-member")
	}
}

func TestRoleResolver_PropagatesStoreErrors(t *testing.T) {
	resolver := newTestResolver(&fakeMemberSource{err: errors.New("db down")}, &fakeCustomRoleSource{})

	_, _, err := resolver.ResolveEffectiveStatement(context.Background(), "org-1", "u-1")
	if err == nil {
		t.Error("expected store error to propagate")
	}
}

// A custom role statement saved and resolved again is unchanged.
func TestRoleResolver_CustomStatementRoundTrip(t *testing.T) {
	saved := NewStatement(map[string][]string{
		ResourceRequests:  {ActionCreate, ActionRead},
		ResourceInventory: {ActionRead},
	})
	members := &fakeMemberSource{roles: map[string]string{"org-9/u-9": "requester"}}
	custom := &fakeCustomRoleSource{statements: map[string]Statement{"org-9/requester": saved}}
	resolver := newTestResolver(members, custom)

	got, found, err := resolver.ResolveEffectiveStatement(context.Background(), "org-9", "u-9")
	if err != nil || !found {
		t.Fatalf("resolve: found=%v err=%v", found, err)
	}
	if !got.Equal(saved) {
		t.Errorf("round trip changed the statement: %v vs %v", got, saved)
	}
}

func TestRoleResolver_Classify(t *testing.T) {
	resolver := newTestResolver(&fakeMemberSource{}, &fakeCustomRoleSource{})

	if ref := resolver.Classify("org-1", RoleOwner); ref.IsCustom() {
		t.Error("owner should classify as static")
	}
	if ref := resolver.Classify("org-1", "stoker"); !ref.IsCustom() {
		t.Error("stoker should classify as custom")
	}
}
