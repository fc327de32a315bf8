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
	"fmt"
)

// MemberEngine evaluates organization-scoped permission checks.
type MemberEngine struct {
	resolver *RoleResolver
}

func NewMemberEngine(resolver *RoleResolver) *MemberEngine {
	return &MemberEngine{resolver: resolver}
}

// EffectiveStatement exposes the resolved statement of a member, for
// callers that render capabilities rather than enforce them.
func (e *MemberEngine) EffectiveStatement(ctx context.Context, orgId, userId string) (Statement, bool, error) {
	return e.resolver.ResolveEffectiveStatement(ctx, orgId, userId)
}

// HasPermission decides whether the member holds every resource/action
// pair in required. A missing organization context or membership is a
// denial, not an error.
func (e *MemberEngine) HasPermission(ctx context.Context, orgId, userId string, required Statement) (Decision, error) {
	if orgId == "" {
		return Deny("no active organization"), nil
	}

	statement, found, err := e.resolver.ResolveEffectiveStatement(ctx, orgId, userId)
	if err != nil {
		return Deny("membership lookup failed"), err
	}
	if !found {
		return Deny("not a member of the organization"), nil
	}

	for resource, actions := range required {
		for _, action := range actions {
			if !statement.HasCapability(resource, action) {
				return Deny(fmt.Sprintf("member lacks %s:%s", resource, action)), nil
			}
		}
	}

	return Allow(), nil
}
