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
	"github.com/orebase/orebase/pkg/http/jwt"
)

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/register", rt.register)
		authGroup.Post("/login", rt.login)

		authGroup.Post("/logout", auth, rt.logout)
		authGroup.Get("/refresh", auth, rt.refresh)
		authGroup.Post("/resetPassword", auth, rt.resetPassword)
	}
}

// actorId extracts the authenticated user from the request context.
func actorId(c *fiber.Ctx) string {
	claims, ok := c.Locals("claims").(*jwt.AuthClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserId
}

func (rt *Router) register(c *fiber.Ctx) error {
	var register model.Register
	if err := c.BodyParser(&register); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.services.Auth.Register(&register); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var login model.Login
	if err := c.BodyParser(&login); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	resp, err := rt.services.Auth.Login(&login, rt.http.Auth)
	if err != nil {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, resp)
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	if err := rt.services.Auth.Logout(actorId(c), rt.http.Auth); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	rToken := c.Query("refreshToken")
	if rToken == "" {
		return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
	}

	token, err := rt.services.Auth.Refresh(actorId(c), rToken, &rt.http.Auth)
	if err != nil {
		return http.WithRepErrMsg(c, http.InvalidToken.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, token)
	return nil
}

func (rt *Router) resetPassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.services.Auth.ResetPassword(actorId(c), req.OldPassword, req.NewPassword); err != nil {
		return http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, true)
	return nil
}
