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
	"github.com/orebase/orebase/pkg/http/middleware"
)

func (rt *Router) organizationRouter(r fiber.Router, auth fiber.Handler) {
	createOrg := middleware.RequireGlobalCapability(rt.gateway, rt.services.User.GetUserRole,
		authz.ResourceOrganization, authz.ActionCreate)

	orgGroup := r.Group("/org", auth)
	{
		// update and delete stay unguarded here, platform admins without
		// a membership are allowed through by the service check
		orgGroup.Post("/create", createOrg, rt.createOrganization)
		orgGroup.Get("/list", rt.listOrganizations)
		orgGroup.Get("/mine", rt.myOrganizations)
		orgGroup.Get("/:orgId", rt.getOrganization)
		orgGroup.Post("/:orgId", rt.updateOrganization)
		orgGroup.Delete("/:orgId", rt.deleteOrganization)
	}
}

func (rt *Router) createOrganization(c *fiber.Ctx) error {
	var req model.CreateOrgReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	org, err := rt.services.Organization.CreateOrganization(actorId(c), &req)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, org)
	return nil
}

func (rt *Router) listOrganizations(c *fiber.Ctx) error {
	pageNum, pageSize := pagination(c)
	orgs, count, err := rt.services.Organization.ListOrganizations(actorId(c),
		c.QueryBool("includeHistory"), pageNum, pageSize)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, fiber.Map{"list": orgs, "total": count})
	return nil
}

func (rt *Router) myOrganizations(c *fiber.Ctx) error {
	orgs, err := rt.services.Organization.ListOrganizationsByUser(actorId(c))
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, orgs)
	return nil
}

func (rt *Router) getOrganization(c *fiber.Ctx) error {
	org, err := rt.services.Organization.GetOrganization(c.Params("orgId"))
	if err != nil {
		return http.WithRepErrMsg(c, http.OrgNotExist.Code, http.OrgNotExist.Msg, c.Path())
	}

	c.Locals(consts.DETAIL, org)
	return nil
}

func (rt *Router) updateOrganization(c *fiber.Ctx) error {
	var req model.UpdateOrgReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.services.Organization.UpdateOrganization(c.Context(), actorId(c), c.Params("orgId"), &req); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) deleteOrganization(c *fiber.Ctx) error {
	if err := rt.services.Organization.DeleteOrganization(c.Context(), actorId(c), c.Params("orgId")); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}
