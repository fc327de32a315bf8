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

import "fmt"

// GlobalEngine evaluates platform administration actions (ban, delete,
// promote users, manage organizations) against the role hierarchy.
type GlobalEngine struct {
	ranks    RankTable
	registry *StatementRegistry
}

func NewGlobalEngine(ranks RankTable, registry *StatementRegistry) *GlobalEngine {
	return &GlobalEngine{ranks: ranks, registry: registry}
}

// IsActionAllowed decides whether an actor may perform a mutating
// action on a target user. requestedNewRole is non-empty only for
// role-change actions.
//
// super_owner is never a valid target, not even for another
// super_owner. An actor can only act strictly downward in rank, and
// can never grant a rank above its own.
func (e *GlobalEngine) IsActionAllowed(actorRole, targetRole, requestedNewRole string) Decision {
	if targetRole == RoleSuperOwner {
		return Deny("super_owner cannot be the target of any action")
	}

	actorRank := e.ranks.Rank(actorRole)
	targetRank := e.ranks.Rank(targetRole)

	if requestedNewRole != "" {
		if newRank := e.ranks.Rank(requestedNewRole); newRank > actorRank {
			return Deny(fmt.Sprintf("requested role %q outranks actor role %q", requestedNewRole, actorRole))
		}
	}

	if actorRank <= targetRank {
		return Deny(fmt.Sprintf("actor rank not strictly greater than target rank: %s(%d) vs %s(%d)",
			actorRole, actorRank, targetRole, targetRank))
	}

	return Allow()
}

// HasCapability reports whether the actor's global role grants action
// on resource, e.g. organization:create.
func (e *GlobalEngine) HasCapability(actorRole, resource, action string) Decision {
	statement, ok := e.registry.Resolve(actorRole)
	if !ok {
		return Deny(fmt.Sprintf("unknown global role %q", actorRole))
	}
	if !statement.HasCapability(resource, action) {
		return Deny(fmt.Sprintf("role %q lacks %s:%s", actorRole, resource, action))
	}
	return Allow()
}

// Rank exposes the rank of a role for callers that compare authority
// outside a full decision, e.g. listing filters.
func (e *GlobalEngine) Rank(role string) int {
	return e.ranks.Rank(role)
}
