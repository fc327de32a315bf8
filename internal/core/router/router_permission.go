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

	"github.com/orebase/orebase/internal/core/consts"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/http"
)

func (rt *Router) permissionRouter(r fiber.Router, auth fiber.Handler) {
	permissionGroup := r.Group("/permission", auth)
	{
		permissionGroup.Post("/check", rt.checkPermission)
		permissionGroup.Post("/checkGlobal", rt.checkGlobalPermission)
		permissionGroup.Get("/statement", rt.myStatement)
	}
}

// myStatement returns the caller's effective statement for an
// organization, identified by the orgId query parameter.
func (rt *Router) myStatement(c *fiber.Ctx) error {
	statement, member, err := rt.services.Permission.MyStatement(c.Context(), c.Query("orgId"), actorId(c))
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, fiber.Map{"member": member, "statement": statement})
	return nil
}

// checkPermission answers a can-i question for an organization scope.
// Denials are a regular response, not an error.
func (rt *Router) checkPermission(c *fiber.Ctx) error {
	var req model.CheckPermissionReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	d, err := rt.services.Permission.CheckMemberPermission(c.Context(), actorId(c), &req)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, d)
	return nil
}

func (rt *Router) checkGlobalPermission(c *fiber.Ctx) error {
	var req model.CheckGlobalReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	d, err := rt.services.Permission.CheckGlobalPermission(actorId(c), &req)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, d)
	return nil
}
