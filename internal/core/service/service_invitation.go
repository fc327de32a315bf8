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
	"time"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/internal/core/repo"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/id"
	"github.com/orebase/orebase/pkg/log"
	"github.com/orebase/orebase/pkg/statemachine"
)

const defaultInvitationTTL = 7 * 24 * time.Hour

type InvitationService struct {
	invitationRepo repo.IInvitationRepository
	userRepo       repo.IUserRepository
	gateway        *authz.Gateway
}

func NewInvitationService(
	invitationRepo repo.IInvitationRepository,
	userRepo repo.IUserRepository,
	gateway *authz.Gateway,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		gateway:        gateway,
	}
}

func (is *InvitationService) CreateInvitation(ctx context.Context, actorId, orgId string, req *model.CreateInvitationReq) (*model.OrganizationInvitation, error) {
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionCreate}}
	d, err := is.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		log.Warnw("create invitation denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return nil, errors.New(http.PermissionDenied.Msg)
	}

	invitation := &model.OrganizationInvitation{
		InvitationId: id.GetUUIDWithoutDashes(),
		OrgId:        orgId,
		Email:        req.Email,
		Role:         req.Role,
		Status:       string(statemachine.InvitationPending),
		InvitedBy:    actorId,
		ExpiresAt:    time.Now().Add(defaultInvitationTTL),
	}
	if err := is.invitationRepo.CreateInvitation(invitation); err != nil {
		log.Errorw("failed to create invitation", "orgId", orgId, "email", req.Email, "error", err)
		return nil, err
	}
	return invitation, nil
}

func (is *InvitationService) ListInvitations(ctx context.Context, actorId, orgId string, includeHistory bool, pageNum, pageSize int) ([]model.OrganizationInvitation, int64, error) {
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionRead}}
	d, err := is.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, 0, err
	}
	if !d.Allowed {
		return nil, 0, errors.New(http.PermissionDenied.Msg)
	}
	offset := (pageNum - 1) * pageSize
	return is.invitationRepo.ListInvitations(orgId, includeHistory, offset, pageSize)
}

func (is *InvitationService) ListMyInvitations(userId string) ([]model.OrganizationInvitation, error) {
	userInfo, err := is.userRepo.FetchUserInfo(userId)
	if err != nil {
		return nil, errors.New(http.UserNotExist.Msg)
	}
	return is.invitationRepo.ListInvitationsByEmail(userInfo.Email)
}

// Accept resolves the invitation and enrolls the caller as a member.
// The status write is conditional on pending so a canceled or expired
// invitation can no longer be accepted.
func (is *InvitationService) Accept(ctx context.Context, userId, invitationId string) (*model.OrganizationMember, error) {
	invitation, userInfo, err := is.resolveForRecipient(userId, invitationId)
	if err != nil {
		return nil, err
	}

	if time.Now().After(invitation.ExpiresAt) {
		// lazily expire instead of relying on a sweeper
		_ = is.transition(invitation, statemachine.EventExpire, statemachine.InvitationExpired)
		return nil, errors.New(http.InvitationExpired.Msg)
	}

	fsm := statemachine.NewInvitationStateMachine()
	fsm.SetCurrent(statemachine.InvitationStatus(invitation.Status))
	if err := fsm.Transition(statemachine.InvitationStatus(invitation.Status),
		statemachine.InvitationAccepted, statemachine.EventAccept); err != nil {
		return nil, errors.New(http.InvitationResolved.Msg)
	}

	member := &model.OrganizationMember{
		MemberId:  id.GetUUIDWithoutDashes(),
		OrgId:     invitation.OrgId,
		UserId:    userId,
		Role:      invitation.Role,
		Username:  userInfo.Username,
		Email:     userInfo.Email,
		InvitedBy: invitation.InvitedBy,
	}
	// status flip and member insert commit together
	if err := is.invitationRepo.AcceptInvitation(invitation.InvitationId, member); err != nil {
		log.Warnw("invitation accept lost the write race", "invitationId", invitationId, "error", err)
		return nil, errors.New(http.InvitationResolved.Msg)
	}
	invitation.Status = string(statemachine.InvitationAccepted)
	return member, nil
}

func (is *InvitationService) Reject(userId, invitationId string) error {
	invitation, _, err := is.resolveForRecipient(userId, invitationId)
	if err != nil {
		return err
	}
	return is.transition(invitation, statemachine.EventReject, statemachine.InvitationRejected)
}

// Cancel revokes a pending invitation on behalf of the organization.
func (is *InvitationService) Cancel(ctx context.Context, actorId, invitationId string) error {
	invitation, err := is.invitationRepo.GetInvitation(invitationId)
	if err != nil {
		return errors.New(http.InvitationNotExist.Msg)
	}
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionDelete}}
	d, err := is.gateway.CheckMember(ctx, invitation.OrgId, actorId, required)
	if err != nil {
		return err
	}
	if !d.Allowed {
		log.Warnw("cancel invitation denied", "actor", actorId, "invitationId", invitationId, "reason", d.Reason)
		return errors.New(http.PermissionDenied.Msg)
	}
	return is.transition(invitation, statemachine.EventCancel, statemachine.InvitationCanceled)
}

// resolveForRecipient loads the invitation and verifies the caller is
// its addressee.
func (is *InvitationService) resolveForRecipient(userId, invitationId string) (*model.OrganizationInvitation, *model.UserInfo, error) {
	invitation, err := is.invitationRepo.GetInvitation(invitationId)
	if err != nil {
		return nil, nil, errors.New(http.InvitationNotExist.Msg)
	}
	userInfo, err := is.userRepo.FetchUserInfo(userId)
	if err != nil {
		return nil, nil, errors.New(http.UserNotExist.Msg)
	}
	if userInfo.Email == "" || userInfo.Email != invitation.Email {
		return nil, nil, errors.New(http.PermissionDenied.Msg)
	}
	return invitation, userInfo, nil
}

// transition validates the move against the invitation state machine
// before handing the conditional write to the store.
func (is *InvitationService) transition(invitation *model.OrganizationInvitation, event statemachine.Event, to statemachine.InvitationStatus) error {
	fsm := statemachine.NewInvitationStateMachine()
	fsm.SetCurrent(statemachine.InvitationStatus(invitation.Status))
	if err := fsm.Transition(statemachine.InvitationStatus(invitation.Status), to, event); err != nil {
		return errors.New(http.InvitationResolved.Msg)
	}
	if err := is.invitationRepo.UpdateInvitationStatus(invitation.InvitationId, to); err != nil {
		return errors.New(http.InvitationResolved.Msg)
	}
	invitation.Status = string(to)
	return nil
}
