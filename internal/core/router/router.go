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
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/service"
	httpx "github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/http/middleware"
	"github.com/orebase/orebase/pkg/version"
)

type Router struct {
	http     httpx.Http
	services *service.Services
	gateway  *authz.Gateway
	redis    *redis.Client
}

func NewRouter(httpConf httpx.Http, services *service.Services, gateway *authz.Gateway, redisClient *redis.Client) *Router {
	return &Router{
		http:     httpConf,
		services: services,
		gateway:  gateway,
		redis:    redisClient,
	}
}

// Router assembles the fiber app: middleware chain, liveness routes
// and the API groups.
func (rt *Router) Router() *fiber.App {

	app := fiber.New(rt.http.FiberConfig())

	app.Use(middleware.RealIPMiddleware())
	app.Use(middleware.RequestMiddleware())
	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.ExceptionMiddleware)
	if rt.http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(&rt.http))
	}
	app.Use(middleware.UnifiedResponseMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})
	if rt.http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group(rt.http.ContextPath)

	auth := middleware.AuthorizationMiddleware(rt.http.Auth, rt.redis)

	rt.authRouter(api, auth)
	rt.userRouter(api, auth)
	rt.organizationRouter(api, auth)
	rt.memberRouter(api, auth)
	rt.invitationRouter(api, auth)
	rt.orgRoleRouter(api, auth)
	rt.permissionRouter(api, auth)

	return app
}

// pagination reads pageNum/pageSize query parameters with sane bounds.
func pagination(c *fiber.Ctx) (int, int) {
	pageNum := c.QueryInt("pageNum", 1)
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := c.QueryInt("pageSize", 20)
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return pageNum, pageSize
}
