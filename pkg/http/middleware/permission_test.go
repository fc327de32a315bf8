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
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orebase/orebase/internal/core/authz"
	httpx "github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/http/jwt"
)

// staticMembers resolves membership roles from a fixed userId -> role map.
type staticMembers map[string]string

func (m staticMembers) MemberRole(_ context.Context, _, userId string) (string, bool, error) {
	role, ok := m[userId]
	return role, ok, nil
}

type noCustomRoles struct{}

func (noCustomRoles) CustomRoleStatement(context.Context, string, string) (authz.Statement, bool, error) {
	return nil, false, nil
}

// claimsFromHeader stands in for the authorization middleware so the
// guards under test see the claims local they expect.
func claimsFromHeader(c *fiber.Ctx) error {
	if uid := c.Get("X-User-Id"); uid != "" {
		c.Locals("claims", &jwt.AuthClaims{UserId: uid})
	}
	return c.Next()
}

func requestAs(app *fiber.App, userId, path string) (int, string) {
	req := httptest.NewRequest("GET", path, nil)
	if userId != "" {
		req.Header.Set("X-User-Id", userId)
	}
	resp, err := app.Test(req)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRequirePermission(t *testing.T) {
	members := staticMembers{"alice": authz.RoleAdmin, "gary": "guest"}
	gateway := authz.ProvideGateway(members, noCustomRoles{})

	app := fiber.New()
	app.Use(claimsFromHeader)
	required := authz.Statement{authz.ResourceMembers: []string{authz.ActionUpdate}}
	app.Get("/org/:orgId/report", RequirePermission(gateway, required), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	status, body := requestAs(app, "alice", "/org/org1/report")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)

	_, body = requestAs(app, "gary", "/org/org1/report")
	assert.Contains(t, body, fmt.Sprintf("%d", httpx.PermissionDenied.Code))

	_, body = requestAs(app, "mallory", "/org/org1/report")
	assert.Contains(t, body, fmt.Sprintf("%d", httpx.PermissionDenied.Code))

	_, body = requestAs(app, "", "/org/org1/report")
	assert.Contains(t, body, fmt.Sprintf("%d", httpx.Unauthorized.Code))
}

func TestRequireGlobalCapability(t *testing.T) {
	gateway := authz.ProvideGateway(staticMembers{}, noCustomRoles{})
	roleOf := func(userId string) (string, error) {
		roles := map[string]string{"root": authz.RoleSuperOwner, "bob": authz.RoleUser}
		if role, ok := roles[userId]; ok {
			return role, nil
		}
		return "", fmt.Errorf("unknown user %s", userId)
	}

	app := fiber.New()
	app.Use(claimsFromHeader)
	guard := RequireGlobalCapability(gateway, roleOf, authz.ResourceAdminUsers, authz.ActionCreate)
	app.Get("/admin/report", guard, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	status, body := requestAs(app, "root", "/admin/report")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)

	_, body = requestAs(app, "bob", "/admin/report")
	assert.Contains(t, body, fmt.Sprintf("%d", httpx.PermissionDenied.Code))

	_, body = requestAs(app, "ghost", "/admin/report")
	assert.Contains(t, body, fmt.Sprintf("%d", httpx.UserNotExist.Code))
}
