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
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/statemachine"
)

// fakeUserRepo is an in-memory IUserRepository keyed by userId.
type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) put(userId, role, email string) {
	f.users[userId] = &model.User{
		UserId:   userId,
		Username: userId,
		Email:    email,
		Role:     role,
	}
}

func (f *fakeUserRepo) AddUser(user *model.User) error {
	f.users[user.UserId] = user
	return nil
}

func (f *fakeUserRepo) Register(register *model.Register) error {
	f.users[register.UserId] = &model.User{
		UserId:   register.UserId,
		Username: register.Username,
		Email:    register.Email,
		Password: register.Password,
		Role:     authz.RoleUser,
	}
	return nil
}

func (f *fakeUserRepo) Login(login *model.Login) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == login.Username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(userId string, u *model.User) error { return nil }

func (f *fakeUserRepo) FetchUserInfo(userId string) (*model.UserInfo, error) {
	u, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.UserInfo{
		UserId:   u.UserId,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}

func (f *fakeUserRepo) GetUserByUserId(userId string) (*model.User, error) {
	u, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (string, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u.UserId, nil
		}
	}
	return "", gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserList(includeHistory bool, offset, pageSize int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) GetUserRole(userId string) (string, error) {
	u, ok := f.users[userId]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return u.Role, nil
}

func (f *fakeUserRepo) SetUserRole(userId, oldRole, newRole string) error {
	u, ok := f.users[userId]
	if !ok || u.Role != oldRole {
		return gorm.ErrRecordNotFound
	}
	u.Role = newRole
	return nil
}

func (f *fakeUserRepo) BanUser(userId, banReason string) error {
	u, ok := f.users[userId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Banned = 1
	u.BanReason = banReason
	return nil
}

func (f *fakeUserRepo) UnbanUser(userId string) error {
	u, ok := f.users[userId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Banned = 0
	return nil
}

func (f *fakeUserRepo) RemoveUser(userId string) error {
	delete(f.users, userId)
	return nil
}

func (f *fakeUserRepo) GetUserPassword(userId string) (string, error) {
	u, ok := f.users[userId]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return u.Password, nil
}

func (f *fakeUserRepo) ResetPassword(userId, newPasswordHash string) error {
	u, ok := f.users[userId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = newPasswordHash
	return nil
}

func (f *fakeUserRepo) SetToken(userId string, tokenInfo *model.TokenInfo, auth http.Auth) error {
	return nil
}

func (f *fakeUserRepo) DelToken(userId string, auth http.Auth) error { return nil }

// fakeMemberRepo is an in-memory IOrganizationMemberRepository keyed
// by orgId/userId.
type fakeMemberRepo struct {
	members map[string]*model.OrganizationMember
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]*model.OrganizationMember{}}
}

func memberKey(orgId, userId string) string { return orgId + "/" + userId }

func (f *fakeMemberRepo) put(orgId, userId, role string) {
	f.members[memberKey(orgId, userId)] = &model.OrganizationMember{
		OrgId:  orgId,
		UserId: userId,
		Role:   role,
	}
}

func (f *fakeMemberRepo) AddMember(member *model.OrganizationMember) error {
	f.members[memberKey(member.OrgId, member.UserId)] = member
	return nil
}

func (f *fakeMemberRepo) GetMember(orgId, userId string) (*model.OrganizationMember, error) {
	m, ok := f.members[memberKey(orgId, userId)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) ListMembers(orgId string, includeHistory bool, offset, pageSize int) ([]model.OrganizationMember, int64, error) {
	var out []model.OrganizationMember
	for _, m := range f.members {
		if m.OrgId == orgId {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMemberRepo) ListUserMemberships(userId string) ([]model.OrganizationMember, error) {
	var out []model.OrganizationMember
	for _, m := range f.members {
		if m.UserId == userId {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) UpdateMemberRole(orgId, userId, oldRole, newRole string) error {
	m, ok := f.members[memberKey(orgId, userId)]
	if !ok || m.Role != oldRole {
		return gorm.ErrRecordNotFound
	}
	m.Role = newRole
	return nil
}

func (f *fakeMemberRepo) RemoveMember(orgId, userId string) error {
	delete(f.members, memberKey(orgId, userId))
	return nil
}

func (f *fakeMemberRepo) MemberRole(ctx context.Context, orgId, userId string) (string, bool, error) {
	m, ok := f.members[memberKey(orgId, userId)]
	if !ok {
		return "", false, nil
	}
	return m.Role, true, nil
}

// fakeOrgRoleRepo is an in-memory IOrganizationRoleRepository keyed by
// orgId/roleName.
type fakeOrgRoleRepo struct {
	roles map[string]*model.OrganizationRole
}

func newFakeOrgRoleRepo() *fakeOrgRoleRepo {
	return &fakeOrgRoleRepo{roles: map[string]*model.OrganizationRole{}}
}

func (f *fakeOrgRoleRepo) put(orgId, roleName string, statement authz.Statement) {
	role := &model.OrganizationRole{OrgId: orgId, RoleName: roleName}
	_ = role.SetStatement(statement)
	f.roles[memberKey(orgId, roleName)] = role
}

func (f *fakeOrgRoleRepo) CreateRole(role *model.OrganizationRole) error {
	f.roles[memberKey(role.OrgId, role.RoleName)] = role
	return nil
}

func (f *fakeOrgRoleRepo) GetRole(orgId, roleName string) (*model.OrganizationRole, error) {
	r, ok := f.roles[memberKey(orgId, roleName)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeOrgRoleRepo) ListRoles(orgId string, includeHistory bool) ([]model.OrganizationRole, error) {
	var out []model.OrganizationRole
	for _, r := range f.roles {
		if r.OrgId == orgId {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeOrgRoleRepo) UpdateRolePermission(orgId, roleName string, permission []byte) error {
	r, ok := f.roles[memberKey(orgId, roleName)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Permission = permission
	return nil
}

func (f *fakeOrgRoleRepo) DeleteRole(orgId, roleName string) error {
	delete(f.roles, memberKey(orgId, roleName))
	return nil
}

func (f *fakeOrgRoleRepo) CustomRoleStatement(ctx context.Context, orgId, roleName string) (authz.Statement, bool, error) {
	r, ok := f.roles[memberKey(orgId, roleName)]
	if !ok {
		return nil, false, nil
	}
	statement, err := r.Statement()
	if err != nil {
		return nil, false, err
	}
	return statement, true, nil
}

// fakeInvitationRepo is an in-memory IInvitationRepository keyed by
// invitationId.
type fakeInvitationRepo struct {
	invitations map[string]*model.OrganizationInvitation
	seq         int
	enroll      *fakeMemberRepo
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: map[string]*model.OrganizationInvitation{}}
}

func (f *fakeInvitationRepo) put(orgId, email, role string, expiresAt time.Time) string {
	f.seq++
	invitationId := fmt.Sprintf("inv-%d", f.seq)
	f.invitations[invitationId] = &model.OrganizationInvitation{
		InvitationId: invitationId,
		OrgId:        orgId,
		Email:        email,
		Role:         role,
		Status:       string(statemachine.InvitationPending),
		ExpiresAt:    expiresAt,
	}
	return invitationId
}

func (f *fakeInvitationRepo) CreateInvitation(invitation *model.OrganizationInvitation) error {
	f.invitations[invitation.InvitationId] = invitation
	return nil
}

func (f *fakeInvitationRepo) GetInvitation(invitationId string) (*model.OrganizationInvitation, error) {
	inv, ok := f.invitations[invitationId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) ListInvitations(orgId string, includeHistory bool, offset, pageSize int) ([]model.OrganizationInvitation, int64, error) {
	var out []model.OrganizationInvitation
	for _, inv := range f.invitations {
		if inv.OrgId == orgId {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvitationRepo) ListInvitationsByEmail(email string) ([]model.OrganizationInvitation, error) {
	var out []model.OrganizationInvitation
	for _, inv := range f.invitations {
		if inv.Email == email && inv.Status == string(statemachine.InvitationPending) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) UpdateInvitationStatus(invitationId string, status statemachine.InvitationStatus) error {
	inv, ok := f.invitations[invitationId]
	if !ok || inv.Status != string(statemachine.InvitationPending) {
		return gorm.ErrRecordNotFound
	}
	inv.Status = string(status)
	return nil
}

func (f *fakeInvitationRepo) AcceptInvitation(invitationId string, member *model.OrganizationMember) error {
	if err := f.UpdateInvitationStatus(invitationId, statemachine.InvitationAccepted); err != nil {
		return err
	}
	if f.enroll != nil {
		return f.enroll.AddMember(member)
	}
	return nil
}

func (f *fakeInvitationRepo) RemoveInvitation(invitationId string) error {
	delete(f.invitations, invitationId)
	return nil
}

func newTestGateway(members *fakeMemberRepo, roles *fakeOrgRoleRepo) *authz.Gateway {
	return authz.ProvideGateway(members, roles)
}
