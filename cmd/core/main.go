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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/conf"
	"github.com/orebase/orebase/internal/core/repo"
	"github.com/orebase/orebase/internal/core/router"
	"github.com/orebase/orebase/internal/core/service"
	"github.com/orebase/orebase/pkg/cache"
	"github.com/orebase/orebase/pkg/database"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/log"
	"github.com/orebase/orebase/pkg/metrics"
	"github.com/orebase/orebase/pkg/runner"
	"github.com/orebase/orebase/pkg/version"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "orebase-core",
	Short:        "Orebase core server",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "conf", "c", "conf.d/config.toml", "config file path")
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configFile string) error {
	appConf := conf.NewConf(configFile)

	if err := log.Init(&appConf.Log); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log.Infow("starting orebase core",
		"version", version.GetVersion().Version,
		"hostname", runner.Hostname,
		"pwd", runner.Pwd,
	)

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	redisCache := cache.NewRedisCache(redisClient)

	repos := repo.NewRepositories(database.NewGormDB(db), redisCache)
	gateway := authz.ProvideGateway(repos.Member, repos.OrgRole)
	services := service.NewServices(repos, gateway)

	rt := router.NewRouter(appConf.Http, services, gateway, redisClient)
	httpClean := http.NewHttp(appConf.Http, rt.Router())

	var metricsServer *metrics.Server
	if appConf.Metrics.Enable {
		metricsServer = metrics.ProvideMetricsServer(appConf.Metrics)
		if err := metricsServer.Start(); err != nil {
			log.Errorw("metrics server failed to start", "error", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-quit
	log.Infow("received signal, shutting down", "signal", sig.String())

	httpClean()
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Stop(ctx); err != nil {
			log.Errorw("metrics server shutdown error", "error", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = redisClient.Close()

	log.Info("server exited")
	return nil
}
