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

func (rt *Router) invitationRouter(r fiber.Router, auth fiber.Handler) {
	orgInvitations := r.Group("/org/:orgId/invitation", auth)
	{
		orgInvitations.Post("/create", rt.requireMember(authz.ResourceMembers, authz.ActionCreate), rt.createInvitation)
		orgInvitations.Get("/list", rt.requireMember(authz.ResourceMembers, authz.ActionRead), rt.listInvitations)
	}

	myInvitations := r.Group("/invitation", auth)
	{
		myInvitations.Get("/mine", rt.myInvitations)
		myInvitations.Post("/:invitationId/accept", rt.acceptInvitation)
		myInvitations.Post("/:invitationId/reject", rt.rejectInvitation)
		myInvitations.Post("/:invitationId/cancel", rt.cancelInvitation)
	}
}

func (rt *Router) createInvitation(c *fiber.Ctx) error {
	var req model.CreateInvitationReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	invitation, err := rt.services.Invitation.CreateInvitation(c.Context(), actorId(c), c.Params("orgId"), &req)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, invitation)
	return nil
}

func (rt *Router) listInvitations(c *fiber.Ctx) error {
	pageNum, pageSize := pagination(c)
	includeHistory := c.QueryBool("includeHistory", false)

	invitations, count, err := rt.services.Invitation.ListInvitations(c.Context(), actorId(c), c.Params("orgId"), includeHistory, pageNum, pageSize)
	if err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, fiber.Map{"list": invitations, "total": count})
	return nil
}

func (rt *Router) myInvitations(c *fiber.Ctx) error {
	invitations, err := rt.services.Invitation.ListMyInvitations(actorId(c))
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, invitations)
	return nil
}

func (rt *Router) acceptInvitation(c *fiber.Ctx) error {
	member, err := rt.services.Invitation.Accept(c.Context(), actorId(c), c.Params("invitationId"))
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, member)
	return nil
}

func (rt *Router) rejectInvitation(c *fiber.Ctx) error {
	if err := rt.services.Invitation.Reject(actorId(c), c.Params("invitationId")); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) cancelInvitation(c *fiber.Ctx) error {
	if err := rt.services.Invitation.Cancel(c.Context(), actorId(c), c.Params("invitationId")); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}
