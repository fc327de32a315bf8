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

// OrgRoleService manages organization-defined custom roles. The static
// role names are reserved and cannot be redefined.
type OrgRoleService struct {
	orgRoleRepo repo.IOrganizationRoleRepository
	gateway     *authz.Gateway
}

func NewOrgRoleService(orgRoleRepo repo.IOrganizationRoleRepository, gateway *authz.Gateway) *OrgRoleService {
	return &OrgRoleService{
		orgRoleRepo: orgRoleRepo,
		gateway:     gateway,
	}
}

func (rs *OrgRoleService) CreateRole(ctx context.Context, actorId, orgId string, req *model.CreateOrgRoleReq) (*model.OrganizationRole, error) {
	required := authz.Statement{authz.ResourceAccessControl: []string{authz.ActionCreate}}
	d, err := rs.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		log.Warnw("create role denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return nil, errors.New(http.PermissionDenied.Msg)
	}

	switch req.RoleName {
	case model.OrgRoleOwner, model.OrgRoleAdmin, model.OrgRoleGuest:
		// static names are not redefinable
		return nil, errors.New(http.RoleAlreadyExist.Msg)
	}
	if _, found, err := rs.orgRoleRepo.CustomRoleStatement(ctx, orgId, req.RoleName); err != nil {
		return nil, err
	} else if found {
		return nil, errors.New(http.RoleAlreadyExist.Msg)
	}

	role := &model.OrganizationRole{
		RoleId:    id.GetUUIDWithoutDashes(),
		OrgId:     orgId,
		RoleName:  req.RoleName,
		CreatedBy: actorId,
	}
	if err := role.SetStatement(authz.NewStatement(req.Permission)); err != nil {
		return nil, err
	}
	if err := rs.orgRoleRepo.CreateRole(role); err != nil {
		log.Errorw("failed to create role", "orgId", orgId, "roleName", req.RoleName, "error", err)
		return nil, err
	}
	return role, nil
}

func (rs *OrgRoleService) GetRole(ctx context.Context, actorId, orgId, roleName string) (*model.OrganizationRole, error) {
	required := authz.Statement{authz.ResourceAccessControl: []string{authz.ActionRead}}
	d, err := rs.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, errors.New(http.PermissionDenied.Msg)
	}
	role, err := rs.orgRoleRepo.GetRole(orgId, roleName)
	if err != nil {
		return nil, errors.New(http.RoleNotExist.Msg)
	}
	return role, nil
}

func (rs *OrgRoleService) ListRoles(ctx context.Context, actorId, orgId string, includeHistory bool) ([]model.OrganizationRole, error) {
	required := authz.Statement{authz.ResourceAccessControl: []string{authz.ActionRead}}
	d, err := rs.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, errors.New(http.PermissionDenied.Msg)
	}
	return rs.orgRoleRepo.ListRoles(orgId, includeHistory)
}

func (rs *OrgRoleService) UpdateRole(ctx context.Context, actorId, orgId, roleName string, req *model.UpdateOrgRoleReq) error {
	required := authz.Statement{authz.ResourceAccessControl: []string{authz.ActionUpdate}}
	d, err := rs.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return err
	}
	if !d.Allowed {
		log.Warnw("update role denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return errors.New(http.PermissionDenied.Msg)
	}

	role := &model.OrganizationRole{}
	if err := role.SetStatement(authz.NewStatement(req.Permission)); err != nil {
		return err
	}
	if err := rs.orgRoleRepo.UpdateRolePermission(orgId, roleName, role.Permission); err != nil {
		return errors.New(http.RoleNotExist.Msg)
	}
	return nil
}

// DeleteRole tombstones the role definition. Members still assigned
// the name fall back to an empty statement and lose all access until
// reassigned.
func (rs *OrgRoleService) DeleteRole(ctx context.Context, actorId, orgId, roleName string) error {
	required := authz.Statement{authz.ResourceAccessControl: []string{authz.ActionDelete}}
	d, err := rs.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return err
	}
	if !d.Allowed {
		log.Warnw("delete role denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return errors.New(http.PermissionDenied.Msg)
	}
	return rs.orgRoleRepo.DeleteRole(orgId, roleName)
}
