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

package model

// CheckPermissionReq asks whether the caller holds every listed
// resource:action pair within an organization.
type CheckPermissionReq struct {
	OrgId      string              `json:"orgId"`
	Permission map[string][]string `json:"permission"`
}

// CheckGlobalReq asks whether the caller may perform a platform
// action on a target user. NewRole is set only for role changes.
type CheckGlobalReq struct {
	TargetUserId string `json:"targetUserId"`
	NewRole      string `json:"newRole,omitempty"`
}
