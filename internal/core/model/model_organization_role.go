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

import (
	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"github.com/orebase/orebase/internal/core/authz"
)

// OrganizationRole is a custom role defined by one organization. Its
// permission column holds a serialized statement.
type OrganizationRole struct {
	BaseModel
	RoleId     string         `gorm:"column:role_id;uniqueIndex" json:"roleId"`
	OrgId      string         `gorm:"column:org_id;index:idx_org_role" json:"orgId"`
	RoleName   string         `gorm:"column:role_name;index:idx_org_role" json:"roleName"`
	Permission datatypes.JSON `gorm:"column:permission;type:json" json:"permission"`
	CreatedBy  string         `gorm:"column:created_by" json:"createdBy"`
}

func (OrganizationRole) TableName() string {
	return "t_organization_role"
}

// Statement decodes the permission column.
func (r *OrganizationRole) Statement() (authz.Statement, error) {
	if len(r.Permission) == 0 {
		return authz.NewStatement(nil), nil
	}
	var grants map[string][]string
	if err := sonic.Unmarshal(r.Permission, &grants); err != nil {
		return nil, err
	}
	return authz.NewStatement(grants), nil
}

// SetStatement encodes statement into the permission column.
func (r *OrganizationRole) SetStatement(statement authz.Statement) error {
	raw, err := sonic.Marshal(statement)
	if err != nil {
		return err
	}
	r.Permission = datatypes.JSON(raw)
	return nil
}

type CreateOrgRoleReq struct {
	RoleName   string              `json:"roleName"`
	Permission map[string][]string `json:"permission"`
}

type UpdateOrgRoleReq struct {
	Permission map[string][]string `json:"permission"`
}
