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

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	// every platform role above plain user carries admin_users create,
	// so this gate keeps non staff out of the administration routes
	staff := middleware.RequireGlobalCapability(rt.gateway, rt.services.User.GetUserRole,
		authz.ResourceAdminUsers, authz.ActionCreate)

	userGroup := r.Group("/user", auth)
	{
		userGroup.Get("/info", rt.userInfo)
		userGroup.Get("/list", staff, rt.listUsers)
		userGroup.Post("/add", staff, rt.addUser)
		userGroup.Post("/setRole", staff, rt.setUserRole)
		userGroup.Post("/ban", staff, rt.banUser)
		userGroup.Post("/unban/:userId", staff, rt.unbanUser)
		userGroup.Delete("/:userId", staff, rt.removeUser)
	}
}

func (rt *Router) userInfo(c *fiber.Ctx) error {
	userInfo, err := rt.services.User.GetUserInfo(actorId(c))
	if err != nil {
		return http.WithRepErrMsg(c, http.UserNotExist.Code, http.UserNotExist.Msg, c.Path())
	}

	c.Locals(consts.DETAIL, userInfo)
	return nil
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	pageNum, pageSize := pagination(c)
	users, count, err := rt.services.User.ListUsers(actorId(c),
		c.QueryBool("includeHistory"), pageNum, pageSize)
	if err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, fiber.Map{"list": users, "total": count})
	return nil
}

func (rt *Router) addUser(c *fiber.Ctx) error {
	var req model.AddUserReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	user, err := rt.services.User.AddUser(actorId(c), &req)
	if err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, user)
	return nil
}

func (rt *Router) setUserRole(c *fiber.Ctx) error {
	var req model.SetRoleReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.services.User.SetUserRole(actorId(c), &req); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) banUser(c *fiber.Ctx) error {
	var req model.BanUserReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.services.User.BanUser(actorId(c), &req); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) unbanUser(c *fiber.Ctx) error {
	if err := rt.services.User.UnbanUser(actorId(c), c.Params("userId")); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) removeUser(c *fiber.Ctx) error {
	if err := rt.services.User.RemoveUser(actorId(c), c.Params("userId")); err != nil {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}
