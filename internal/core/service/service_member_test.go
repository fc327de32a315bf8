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

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/http"
)

type memberFixture struct {
	svc     *MemberService
	users   *fakeUserRepo
	members *fakeMemberRepo
	roles   *fakeOrgRoleRepo
}

func newMemberFixture() *memberFixture {
	users := newFakeUserRepo()
	members := newFakeMemberRepo()
	roles := newFakeOrgRoleRepo()
	gw := newTestGateway(members, roles)
	return &memberFixture{
		svc:     NewMemberService(members, roles, users, gw),
		users:   users,
		members: members,
		roles:   roles,
	}
}

func TestAddMemberRequiresMembersCreate(t *testing.T) {
	f := newMemberFixture()
	f.users.put("bob", authz.RoleUser, "bob@example.com")
	f.members.put("org-1", "owner-1", model.OrgRoleOwner)
	f.members.put("org-1", "guest-1", model.OrgRoleGuest)

	ctx := context.Background()

	// a guest can read members but not add them
	_, err := f.svc.AddMember(ctx, "guest-1", "org-1", "bob", model.OrgRoleGuest)
	assert.EqualError(t, err, http.PermissionDenied.Msg)

	member, err := f.svc.AddMember(ctx, "owner-1", "org-1", "bob", model.OrgRoleGuest)
	require.NoError(t, err)
	assert.Equal(t, model.OrgRoleGuest, member.Role)
}

func TestAddMemberUnknownRole(t *testing.T) {
	f := newMemberFixture()
	f.users.put("bob", authz.RoleUser, "bob@example.com")
	f.members.put("org-1", "owner-1", model.OrgRoleOwner)

	_, err := f.svc.AddMember(context.Background(), "owner-1", "org-1", "bob", "foreman")
	assert.EqualError(t, err, http.RoleNotExist.Msg)

	// defining the custom role makes the same assignment valid
	f.roles.put("org-1", "foreman", authz.Statement{authz.ResourceProduction: []string{authz.ActionCreate, authz.ActionRead}})
	_, err = f.svc.AddMember(context.Background(), "owner-1", "org-1", "bob", "foreman")
	assert.NoError(t, err)
}

func TestUpdateMemberRole(t *testing.T) {
	f := newMemberFixture()
	f.members.put("org-1", "owner-1", model.OrgRoleOwner)
	f.members.put("org-1", "bob", model.OrgRoleGuest)

	err := f.svc.UpdateMemberRole(context.Background(), "owner-1", "org-1", "bob", &model.UpdateMemberRoleReq{Role: model.OrgRoleAdmin})
	require.NoError(t, err)

	m, err := f.members.GetMember("org-1", "bob")
	require.NoError(t, err)
	assert.Equal(t, model.OrgRoleAdmin, m.Role)
}

func TestNonMemberDenied(t *testing.T) {
	f := newMemberFixture()
	f.members.put("org-1", "owner-1", model.OrgRoleOwner)

	_, _, err := f.svc.ListMembers(context.Background(), "stranger", "org-1", false, 1, 20)
	assert.EqualError(t, err, http.PermissionDenied.Msg)
}

func TestRemoveMemberSelfLeave(t *testing.T) {
	f := newMemberFixture()
	f.members.put("org-1", "bob", model.OrgRoleGuest)

	// guests cannot remove others
	err := f.svc.RemoveMember(context.Background(), "bob", "org-1", "alice")
	require.Error(t, err)

	// but anyone may leave
	require.NoError(t, f.svc.RemoveMember(context.Background(), "bob", "org-1", "bob"))
	memberships, err := f.svc.ListMyMemberships("bob")
	require.NoError(t, err)
	assert.Empty(t, memberships)
}

func TestRemoveMemberIdempotent(t *testing.T) {
	f := newMemberFixture()
	f.members.put("org-1", "owner-1", model.OrgRoleOwner)
	f.members.put("org-1", "bob", model.OrgRoleGuest)

	ctx := context.Background()
	require.NoError(t, f.svc.RemoveMember(ctx, "owner-1", "org-1", "bob"))
	assert.NoError(t, f.svc.RemoveMember(ctx, "owner-1", "org-1", "bob"))
}
