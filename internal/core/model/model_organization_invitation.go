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

import "time"

// OrganizationInvitation invites an email address into an organization
// under a proposed role. Status moves pending -> accepted/rejected/
// canceled/expired exactly once.
type OrganizationInvitation struct {
	BaseModel
	InvitationId string    `gorm:"column:invitation_id;uniqueIndex" json:"invitationId"`
	OrgId        string    `gorm:"column:org_id;index" json:"orgId"`
	Email        string    `gorm:"column:email;index" json:"email"`
	Role         string    `gorm:"column:role" json:"role"`
	Status       string    `gorm:"column:status;default:pending" json:"status"`
	InvitedBy    string    `gorm:"column:invited_by" json:"invitedBy"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expiresAt"`
}

func (OrganizationInvitation) TableName() string {
	return "t_organization_invitation"
}

type CreateInvitationReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
