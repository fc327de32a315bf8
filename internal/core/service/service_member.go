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
	"errors"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/internal/core/repo"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/id"
	"github.com/orebase/orebase/pkg/log"
)

type MemberService struct {
	memberRepo  repo.IOrganizationMemberRepository
	orgRoleRepo repo.IOrganizationRoleRepository
	userRepo    repo.IUserRepository
	gateway     *authz.Gateway
}

func NewMemberService(
	memberRepo repo.IOrganizationMemberRepository,
	orgRoleRepo repo.IOrganizationRoleRepository,
	userRepo repo.IUserRepository,
	gateway *authz.Gateway,
) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		orgRoleRepo: orgRoleRepo,
		userRepo:    userRepo,
		gateway:     gateway,
	}
}

func (ms *MemberService) AddMember(ctx context.Context, actorId, orgId, userId, role string) (*model.OrganizationMember, error) {
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionCreate}}
	d, err := ms.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		log.Warnw("add member denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return nil, errors.New(http.PermissionDenied.Msg)
	}
	if err := ms.validateRole(ctx, orgId, role); err != nil {
		return nil, err
	}

	if _, err := ms.memberRepo.GetMember(orgId, userId); err == nil {
		return nil, errors.New(http.MemberAlreadyExist.Msg)
	}
	userInfo, err := ms.userRepo.FetchUserInfo(userId)
	if err != nil {
		return nil, errors.New(http.UserNotExist.Msg)
	}

	member := &model.OrganizationMember{
		MemberId:  id.GetUUIDWithoutDashes(),
		OrgId:     orgId,
		UserId:    userId,
		Role:      role,
		Username:  userInfo.Username,
		Email:     userInfo.Email,
		InvitedBy: actorId,
	}
	if err := ms.memberRepo.AddMember(member); err != nil {
		log.Errorw("failed to add member", "orgId", orgId, "userId", userId, "error", err)
		return nil, err
	}
	return member, nil
}

func (ms *MemberService) GetMember(ctx context.Context, actorId, orgId, userId string) (*model.OrganizationMember, error) {
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionRead}}
	d, err := ms.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, errors.New(http.PermissionDenied.Msg)
	}
	member, err := ms.memberRepo.GetMember(orgId, userId)
	if err != nil {
		return nil, errors.New(http.MemberNotExist.Msg)
	}
	return member, nil
}

func (ms *MemberService) ListMembers(ctx context.Context, actorId, orgId string, includeHistory bool, pageNum, pageSize int) ([]model.OrganizationMember, int64, error) {
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionRead}}
	d, err := ms.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, 0, err
	}
	if !d.Allowed {
		return nil, 0, errors.New(http.PermissionDenied.Msg)
	}
	offset := (pageNum - 1) * pageSize
	return ms.memberRepo.ListMembers(orgId, includeHistory, offset, pageSize)
}

// ListMyMemberships returns the caller's own active memberships, no
// permission needed beyond being signed in.
func (ms *MemberService) ListMyMemberships(userId string) ([]model.OrganizationMember, error) {
	return ms.memberRepo.ListUserMemberships(userId)
}

// UpdateMemberRole changes a member's role. The write is conditional
// on the role the member held when the decision was made.
func (ms *MemberService) UpdateMemberRole(ctx context.Context, actorId, orgId, userId string, req *model.UpdateMemberRoleReq) error {
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionUpdate}}
	d, err := ms.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return err
	}
	if !d.Allowed {
		log.Warnw("update member role denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return errors.New(http.PermissionDenied.Msg)
	}
	if err := ms.validateRole(ctx, orgId, req.Role); err != nil {
		return err
	}

	member, err := ms.memberRepo.GetMember(orgId, userId)
	if err != nil {
		return errors.New(http.MemberNotExist.Msg)
	}
	if err := ms.memberRepo.UpdateMemberRole(orgId, userId, member.Role, req.Role); err != nil {
		log.Errorw("member role change lost the write race", "orgId", orgId, "userId", userId, "error", err)
		return errors.New(http.InvalidStatusParameter.Msg)
	}
	return nil
}

// RemoveMember tombstones the membership. Removing an already removed
// member succeeds without effect. Members may always leave on their
// own; removing anyone else takes the members delete capability.
func (ms *MemberService) RemoveMember(ctx context.Context, actorId, orgId, userId string) error {
	if actorId != userId {
		required := authz.Statement{authz.ResourceMembers: []string{authz.ActionDelete}}
		d, err := ms.gateway.CheckMember(ctx, orgId, actorId, required)
		if err != nil {
			return err
		}
		if !d.Allowed {
			log.Warnw("remove member denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
			return errors.New(http.PermissionDenied.Msg)
		}
	}
	return ms.memberRepo.RemoveMember(orgId, userId)
}

// validateRole accepts a static role name or a custom role defined by
// the organization.
func (ms *MemberService) validateRole(ctx context.Context, orgId, role string) error {
	switch role {
	case model.OrgRoleOwner, model.OrgRoleAdmin, model.OrgRoleGuest:
		return nil
	}
	_, found, err := ms.orgRoleRepo.CustomRoleStatement(ctx, orgId, role)
	if err != nil {
		return err
	}
	if !found {
		return errors.New(http.RoleNotExist.Msg)
	}
	return nil
}
