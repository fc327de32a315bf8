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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Authorization decision metrics. Every gateway check is counted,
// whether it came from middleware, a service call or a can-i probe.
var (
	AuthzDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orebase",
			Subsystem: "authz",
			Name:      "decisions_total",
			Help:      "Authorization decisions by check kind and outcome.",
		},
		[]string{"check", "outcome"},
	)

	AuthzDecisionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orebase",
			Subsystem: "authz",
			Name:      "decision_duration_seconds",
			Help:      "Latency of authorization decisions.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"check"},
	)
)

// SetupAuthzMetrics registers the authorization collectors.
func SetupAuthzMetrics(registry *prometheus.Registry) {
	registry.MustRegister(AuthzDecisionsTotal, AuthzDecisionDuration)
}

// ObserveDecision records one authorization decision.
func ObserveDecision(check string, allowed bool, elapsed time.Duration) {
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	AuthzDecisionsTotal.WithLabelValues(check, outcome).Inc()
	AuthzDecisionDuration.WithLabelValues(check).Observe(elapsed.Seconds())
}
