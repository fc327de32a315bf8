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

package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/http/jwt"
	"github.com/orebase/orebase/pkg/log"
)

// GlobalRoleFunc resolves a user's platform role.
type GlobalRoleFunc func(userId string) (string, error)

// RequirePermission gates the route on the caller holding every
// resource:action pair of required inside the organization addressed
// by the orgId path parameter.
func RequirePermission(gateway *authz.Gateway, required authz.Statement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*jwt.AuthClaims)
		if !ok || claims == nil {
			return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
		}

		orgId := c.Params("orgId")
		if orgId == "" {
			orgId = c.Get("X-Org-Id")
		}
		if orgId == "" {
			return http.WithRepErrMsg(c, http.OrgIdIsEmpty.Code, http.OrgIdIsEmpty.Msg, c.Path())
		}

		d, err := gateway.CheckMember(c.Context(), orgId, claims.UserId, required)
		if err != nil {
			log.Errorw("permission check failed", "userId", claims.UserId, "orgId", orgId, "error", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if !d.Allowed {
			return http.WithRepErrMsg(c, http.PermissionDenied.Code, d.Reason, c.Path())
		}
		return c.Next()
	}
}

// RequireGlobalCapability gates the route on the caller's platform
// role granting action on resource, e.g. organization:create.
func RequireGlobalCapability(gateway *authz.Gateway, roleOf GlobalRoleFunc, resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*jwt.AuthClaims)
		if !ok || claims == nil {
			return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
		}

		role, err := roleOf(claims.UserId)
		if err != nil {
			return http.WithRepErrMsg(c, http.UserNotExist.Code, http.UserNotExist.Msg, c.Path())
		}
		if d := gateway.CheckGlobalCapability(role, resource, action); !d.Allowed {
			return http.WithRepErrMsg(c, http.PermissionDenied.Code, d.Reason, c.Path())
		}
		return c.Next()
	}
}
