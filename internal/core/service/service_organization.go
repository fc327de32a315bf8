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

type OrganizationService struct {
	orgRepo  repo.IOrganizationRepository
	userRepo repo.IUserRepository
	gateway  *authz.Gateway
}

func NewOrganizationService(orgRepo repo.IOrganizationRepository, userRepo repo.IUserRepository, gateway *authz.Gateway) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		gateway:  gateway,
	}
}

// CreateOrganization creates the organization and enrolls the creator
// as its owner member in one transaction.
func (os *OrganizationService) CreateOrganization(actorId string, req *model.CreateOrgReq) (*model.Organization, error) {
	actorRole, err := os.userRepo.GetUserRole(actorId)
	if err != nil {
		return nil, errors.New(http.UserNotExist.Msg)
	}
	if d := os.gateway.CheckGlobalCapability(actorRole, authz.ResourceOrganization, authz.ActionCreate); !d.Allowed {
		log.Warnw("create organization denied", "actor", actorId, "reason", d.Reason)
		return nil, errors.New(http.PermissionDenied.Msg)
	}

	userInfo, err := os.userRepo.FetchUserInfo(actorId)
	if err != nil {
		return nil, errors.New(http.UserNotExist.Msg)
	}

	org := &model.Organization{
		OrgId:       id.GetUUIDWithoutDashes(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Logo:        req.Logo,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		OwnerUserId: actorId,
	}
	ownerMember := &model.OrganizationMember{
		MemberId: id.GetUUIDWithoutDashes(),
		OrgId:    org.OrgId,
		UserId:   actorId,
		Role:     model.OrgRoleOwner,
		Username: userInfo.Username,
		Email:    userInfo.Email,
	}

	if err := os.orgRepo.CreateOrganization(org, ownerMember); err != nil {
		log.Errorw("failed to create organization", "name", req.Name, "error", err)
		return nil, err
	}
	return org, nil
}

func (os *OrganizationService) GetOrganization(orgId string) (*model.Organization, error) {
	org, err := os.orgRepo.GetOrganization(orgId)
	if err != nil {
		return nil, errors.New(http.OrgNotExist.Msg)
	}
	return org, nil
}

func (os *OrganizationService) ListOrganizations(actorId string, includeHistory bool, pageNum, pageSize int) ([]model.Organization, int64, error) {
	actorRole, err := os.userRepo.GetUserRole(actorId)
	if err != nil {
		return nil, 0, errors.New(http.UserNotExist.Msg)
	}
	// platform admins see everything, including tombstoned orgs on
	// request; everyone else sees their own active orgs
	if d := os.gateway.CheckGlobalCapability(actorRole, authz.ResourceOrganization, authz.ActionUpdate); d.Allowed {
		offset := (pageNum - 1) * pageSize
		return os.orgRepo.ListOrganizations(includeHistory, offset, pageSize)
	}
	orgs, err := os.orgRepo.ListOrganizationsByUser(actorId)
	if err != nil {
		return nil, 0, err
	}
	return orgs, int64(len(orgs)), nil
}

func (os *OrganizationService) ListOrganizationsByUser(userId string) ([]model.Organization, error) {
	return os.orgRepo.ListOrganizationsByUser(userId)
}

func (os *OrganizationService) UpdateOrganization(ctx context.Context, actorId, orgId string, req *model.UpdateOrgReq) error {
	required := authz.Statement{authz.ResourceOrganization: []string{authz.ActionUpdate}}
	d, err := os.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return err
	}
	if !d.Allowed {
		log.Warnw("update organization denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return errors.New(http.PermissionDenied.Msg)
	}

	org := &model.Organization{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	return os.orgRepo.UpdateOrganization(orgId, org)
}

// DeleteOrganization tombstones the organization and everything under
// it. Only an owner member holds organization:delete.
func (os *OrganizationService) DeleteOrganization(ctx context.Context, actorId, orgId string) error {
	required := authz.Statement{authz.ResourceOrganization: []string{authz.ActionDelete}}
	d, err := os.gateway.CheckMember(ctx, orgId, actorId, required)
	if err != nil {
		return err
	}
	if !d.Allowed {
		log.Warnw("delete organization denied", "actor", actorId, "orgId", orgId, "reason", d.Reason)
		return errors.New(http.PermissionDenied.Msg)
	}
	return os.orgRepo.DeleteOrganization(orgId)
}
