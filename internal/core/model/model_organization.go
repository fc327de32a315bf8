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

import "gorm.io/datatypes"

type Organization struct {
	BaseModel
	OrgId       string         `gorm:"column:org_id;uniqueIndex" json:"orgId"`
	Name        string         `gorm:"column:name" json:"name"`
	Slug        string         `gorm:"column:slug;index" json:"slug"`
	Description string         `gorm:"column:description" json:"description"`
	Logo        string         `gorm:"column:logo" json:"logo"`
	Email       string         `gorm:"column:email" json:"email"`
	Phone       string         `gorm:"column:phone" json:"phone"`
	Address     string         `gorm:"column:address" json:"address"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata"`
	OwnerUserId string         `gorm:"column:owner_user_id" json:"ownerUserId"`
}

func (Organization) TableName() string {
	return "t_organization"
}

type CreateOrgReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type UpdateOrgReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}
