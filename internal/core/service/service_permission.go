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
)

// PermissionService answers can-i questions for clients that want to
// grey out UI actions before attempting them.
type PermissionService struct {
	userRepo repo.IUserRepository
	gateway  *authz.Gateway
}

func NewPermissionService(userRepo repo.IUserRepository, gateway *authz.Gateway) *PermissionService {
	return &PermissionService{
		userRepo: userRepo,
		gateway:  gateway,
	}
}

// CheckMemberPermission evaluates the caller against every listed
// resource:action pair inside the organization.
func (ps *PermissionService) CheckMemberPermission(ctx context.Context, actorId string, req *model.CheckPermissionReq) (authz.Decision, error) {
	if req.OrgId == "" {
		return authz.Decision{}, errors.New(http.OrgIdIsEmpty.Msg)
	}
	return ps.gateway.CheckMember(ctx, req.OrgId, actorId, authz.NewStatement(req.Permission))
}

// MyStatement returns the caller's effective statement within the
// organization, letting the UI render only what the member can do.
// Non-members get an empty statement.
func (ps *PermissionService) MyStatement(ctx context.Context, orgId, actorId string) (authz.Statement, bool, error) {
	if orgId == "" {
		return nil, false, errors.New(http.OrgIdIsEmpty.Msg)
	}
	statement, found, err := ps.gateway.EffectiveStatement(ctx, orgId, actorId)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return authz.Statement{}, false, nil
	}
	return statement, true, nil
}

// CheckGlobalPermission evaluates the caller against a platform action
// on a target user.
func (ps *PermissionService) CheckGlobalPermission(actorId string, req *model.CheckGlobalReq) (authz.Decision, error) {
	actorRole, err := ps.userRepo.GetUserRole(actorId)
	if err != nil {
		return authz.Decision{}, errors.New(http.UserNotExist.Msg)
	}
	targetRole, err := ps.userRepo.GetUserRole(req.TargetUserId)
	if err != nil {
		return authz.Decision{}, errors.New(http.UserNotExist.Msg)
	}
	return ps.gateway.CheckGlobal(actorRole, targetRole, req.NewRole), nil
}
