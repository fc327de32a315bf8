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

package authz

import (
	"context"
	"time"

	"github.com/orebase/orebase/pkg/metrics"
)

// Gateway is the single authorization entry point. Request middleware,
// services and the can-i endpoints all call the same rule functions
// through it, so enforcement and visibility can never diverge.
type Gateway struct {
	global *GlobalEngine
	member *MemberEngine
}

func NewGateway(global *GlobalEngine, member *MemberEngine) *Gateway {
	return &Gateway{global: global, member: member}
}

// CheckGlobal decides a platform administration action on a target
// user. requestedNewRole is empty unless the action changes a role.
func (g *Gateway) CheckGlobal(actorRole, targetRole, requestedNewRole string) Decision {
	start := time.Now()
	decision := g.global.IsActionAllowed(actorRole, targetRole, requestedNewRole)
	metrics.ObserveDecision("global", decision.Allowed, time.Since(start))
	return decision
}

// CheckGlobalCapability decides a platform capability that has no
// target user, e.g. organization:create.
func (g *Gateway) CheckGlobalCapability(actorRole, resource, action string) Decision {
	start := time.Now()
	decision := g.global.HasCapability(actorRole, resource, action)
	metrics.ObserveDecision("global_capability", decision.Allowed, time.Since(start))
	return decision
}

// CheckMember decides an organization-scoped action.
func (g *Gateway) CheckMember(ctx context.Context, orgId, userId string, required Statement) (Decision, error) {
	start := time.Now()
	decision, err := g.member.HasPermission(ctx, orgId, userId, required)
	metrics.ObserveDecision("member", decision.Allowed, time.Since(start))
	return decision, err
}

// EffectiveStatement returns the statement governing userId within
// orgId. found is false for non-members.
func (g *Gateway) EffectiveStatement(ctx context.Context, orgId, userId string) (Statement, bool, error) {
	return g.member.EffectiveStatement(ctx, orgId, userId)
}

// Rank exposes the global rank table for rank-aware listings.
func (g *Gateway) Rank(role string) int {
	return g.global.Rank(role)
}
