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

func (rt *Router) memberRouter(r fiber.Router, auth fiber.Handler) {
	r.Get("/member/mine", auth, rt.myMemberships)

	memberGroup := r.Group("/org/:orgId/member", auth)
	{
		memberGroup.Post("/add", rt.requireMember(authz.ResourceMembers, authz.ActionCreate), rt.addMember)
		memberGroup.Get("/list", rt.requireMember(authz.ResourceMembers, authz.ActionRead), rt.listMembers)
		memberGroup.Get("/:userId", rt.requireMember(authz.ResourceMembers, authz.ActionRead), rt.getMember)
		memberGroup.Post("/:userId/role", rt.requireMember(authz.ResourceMembers, authz.ActionUpdate), rt.updateMemberRole)
		// no guard on delete, members may always leave on their own
		memberGroup.Delete("/:userId", rt.removeMember)
	}
}

// requireMember gates a route on one resource:action capability inside
// the organization addressed by the path.
func (rt *Router) requireMember(resource, action string) fiber.Handler {
	return middleware.RequirePermission(rt.gateway, authz.Statement{resource: []string{action}})
}

func (rt *Router) myMemberships(c *fiber.Ctx) error {
	memberships, err := rt.services.Member.ListMyMemberships(actorId(c))
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, memberships)
	return nil
}

func (rt *Router) addMember(c *fiber.Ctx) error {
	var req struct {
		UserId string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	member, err := rt.services.Member.AddMember(c.Context(), actorId(c), c.Params("orgId"), req.UserId, req.Role)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) listMembers(c *fiber.Ctx) error {
	pageNum, pageSize := pagination(c)
	members, count, err := rt.services.Member.ListMembers(c.Context(), actorId(c), c.Params("orgId"),
		c.QueryBool("includeHistory"), pageNum, pageSize)
	if err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, fiber.Map{"list": members, "total": count})
	return nil
}

func (rt *Router) getMember(c *fiber.Ctx) error {
	member, err := rt.services.Member.GetMember(c.Context(), actorId(c), c.Params("orgId"), c.Params("userId"))
	if err != nil {
		return http.WithRepErrMsg(c, http.MemberNotExist.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) updateMemberRole(c *fiber.Ctx) error {
	var req model.UpdateMemberRoleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.services.Member.UpdateMemberRole(c.Context(), actorId(c), c.Params("orgId"), c.Params("userId"), &req); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) removeMember(c *fiber.Ctx) error {
	if err := rt.services.Member.RemoveMember(c.Context(), actorId(c), c.Params("orgId"), c.Params("userId")); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}
