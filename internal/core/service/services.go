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
	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/repo"
)

// Services aggregates all services.
type Services struct {
	Auth         *AuthService
	User         *UserService
	Organization *OrganizationService
	Member       *MemberService
	Invitation   *InvitationService
	OrgRole      *OrgRoleService
	Permission   *PermissionService
}

// NewServices wires every service over the repositories and the
// authorization gateway.
func NewServices(repos *repo.Repositories, gateway *authz.Gateway) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User),
		User:         NewUserService(repos.User, gateway),
		Organization: NewOrganizationService(repos.Org, repos.User, gateway),
		Member:       NewMemberService(repos.Member, repos.OrgRole, repos.User, gateway),
		Invitation:   NewInvitationService(repos.Invitation, repos.User, gateway),
		OrgRole:      NewOrgRoleService(repos.OrgRole, gateway),
		Permission:   NewPermissionService(repos.User, gateway),
	}
}
