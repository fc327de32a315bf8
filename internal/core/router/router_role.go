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

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/consts"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/http"
)

func (rt *Router) orgRoleRouter(r fiber.Router, auth fiber.Handler) {
	roleGroup := r.Group("/org/:orgId/role", auth)
	{
		roleGroup.Post("/create", rt.requireMember(authz.ResourceAccessControl, authz.ActionCreate), rt.createOrgRole)
		roleGroup.Get("/list", rt.requireMember(authz.ResourceAccessControl, authz.ActionRead), rt.listOrgRoles)
		roleGroup.Get("/:roleName", rt.requireMember(authz.ResourceAccessControl, authz.ActionRead), rt.getOrgRole)
		roleGroup.Post("/:roleName", rt.requireMember(authz.ResourceAccessControl, authz.ActionUpdate), rt.updateOrgRole)
		roleGroup.Delete("/:roleName", rt.requireMember(authz.ResourceAccessControl, authz.ActionDelete), rt.deleteOrgRole)
	}
}

func (rt *Router) createOrgRole(c *fiber.Ctx) error {
	var req model.CreateOrgRoleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	role, err := rt.services.OrgRole.CreateRole(c.Context(), actorId(c), c.Params("orgId"), &req)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, role)
	return nil
}

func (rt *Router) listOrgRoles(c *fiber.Ctx) error {
	roles, err := rt.services.OrgRole.ListRoles(c.Context(), actorId(c), c.Params("orgId"),
		c.QueryBool("includeHistory"))
	if err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, roles)
	return nil
}

func (rt *Router) getOrgRole(c *fiber.Ctx) error {
	role, err := rt.services.OrgRole.GetRole(c.Context(), actorId(c), c.Params("orgId"), c.Params("roleName"))
	if err != nil {
		return http.WithRepErrMsg(c, http.RoleNotExist.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, role)
	return nil
}

func (rt *Router) updateOrgRole(c *fiber.Ctx) error {
	var req model.UpdateOrgRoleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.services.OrgRole.UpdateRole(c.Context(), actorId(c), c.Params("orgId"), c.Params("roleName"), &req); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) deleteOrgRole(c *fiber.Ctx) error {
	if err := rt.services.OrgRole.DeleteRole(c.Context(), actorId(c), c.Params("orgId"), c.Params("roleName")); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}
