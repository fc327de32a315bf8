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

package conf

import (
	"github.com/google/wire"

	"github.com/orebase/orebase/pkg/cache"
	"github.com/orebase/orebase/pkg/database"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/log"
	"github.com/orebase/orebase/pkg/metrics"
)

// ProviderSet provides configuration layer dependencies.
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideMetricsConfig,
)

// ProvideConf provides the application configuration.
func ProvideConf(configPath string) AppConfig {
	return NewConf(configPath)
}

// ProvideHttpConfig provides the HTTP server configuration.
func ProvideHttpConfig(appConf AppConfig) http.Http {
	return appConf.Http
}

// ProvideLogConfig provides the log configuration.
func ProvideLogConfig(appConf AppConfig) log.Conf {
	return appConf.Log
}

// ProvideDatabaseConfig provides the database configuration.
func ProvideDatabaseConfig(appConf AppConfig) database.Database {
	return appConf.Database
}

// ProvideRedisConfig provides the Redis configuration.
func ProvideRedisConfig(appConf AppConfig) cache.Redis {
	return appConf.Redis
}

// ProvideMetricsConfig provides the metrics configuration.
func ProvideMetricsConfig(appConf AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}
