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

// OrganizationMember binds a user to one organization under a role
// name. The role is either a static role or the name of an
// OrganizationRole of the same organization.
type OrganizationMember struct {
	BaseModel
	MemberId  string `gorm:"column:member_id;uniqueIndex" json:"memberId"`
	OrgId     string `gorm:"column:org_id;index:idx_org_user" json:"orgId"`
	UserId    string `gorm:"column:user_id;index:idx_org_user" json:"userId"`
	Role      string `gorm:"column:role" json:"role"`
	Username  string `gorm:"column:username" json:"username"` // redundant for listings
	Email     string `gorm:"column:email" json:"email"`       // redundant for listings
	InvitedBy string `gorm:"column:invited_by" json:"invitedBy"`
}

func (OrganizationMember) TableName() string {
	return "t_organization_member"
}

// Static member role names. Any other role name refers to an
// organization-defined custom role.
const (
	OrgRoleOwner = "owner"
	OrgRoleAdmin = "admin"
	OrgRoleGuest = "guest"
)

type UpdateMemberRoleReq struct {
	Role string `json:"role"`
}
