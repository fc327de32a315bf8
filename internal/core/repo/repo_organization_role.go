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

package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/database"
)

type IOrganizationRoleRepository interface {
	CreateRole(role *model.OrganizationRole) error
	GetRole(orgId, roleName string) (*model.OrganizationRole, error)
	ListRoles(orgId string, includeHistory bool) ([]model.OrganizationRole, error)
	UpdateRolePermission(orgId, roleName string, permission []byte) error
	DeleteRole(orgId, roleName string) error

	// CustomRoleStatement implements authz.CustomRoleSource.
	CustomRoleStatement(ctx context.Context, orgId, roleName string) (authz.Statement, bool, error)
}

type OrganizationRoleRepo struct {
	db        database.IDatabase
	roleModel *model.OrganizationRole
}

func NewOrganizationRoleRepo(db database.IDatabase) IOrganizationRoleRepository {
	return &OrganizationRoleRepo{
		db:        db,
		roleModel: &model.OrganizationRole{},
	}
}

func (rr *OrganizationRoleRepo) CreateRole(role *model.OrganizationRole) error {
	return rr.db.Database().Create(role).Error
}

func (rr *OrganizationRoleRepo) GetRole(orgId, roleName string) (*model.OrganizationRole, error) {
	var role = &model.OrganizationRole{}
	err := rr.db.Database().Table(rr.roleModel.TableName()).
		Where("org_id = ? AND role_name = ?", orgId, roleName).First(role).Error
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (rr *OrganizationRoleRepo) ListRoles(orgId string, includeHistory bool) ([]model.OrganizationRole, error) {
	var roles []model.OrganizationRole
	db := rr.db.Database()
	if includeHistory {
		db = db.Unscoped()
	}
	err := db.Table(rr.roleModel.TableName()).
		Where("org_id = ?", orgId).Order("id asc").Find(&roles).Error
	return roles, err
}

func (rr *OrganizationRoleRepo) UpdateRolePermission(orgId, roleName string, permission []byte) error {
	res := rr.db.Database().Table(rr.roleModel.TableName()).
		Where("org_id = ? AND role_name = ?", orgId, roleName).
		Update("permission", permission)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (rr *OrganizationRoleRepo) DeleteRole(orgId, roleName string) error {
	return rr.db.Database().
		Where("org_id = ? AND role_name = ?", orgId, roleName).
		Delete(rr.roleModel).Error
}

// CustomRoleStatement resolves a dynamic role to its statement for the
// authorization resolver. Missing roles report not-found, they never
// error.
func (rr *OrganizationRoleRepo) CustomRoleStatement(ctx context.Context, orgId, roleName string) (authz.Statement, bool, error) {
	var role = &model.OrganizationRole{}
	err := rr.db.Database().WithContext(ctx).Table(rr.roleModel.TableName()).
		Where("org_id = ? AND role_name = ?", orgId, roleName).First(role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	statement, err := role.Statement()
	if err != nil {
		return nil, false, err
	}
	return statement, true, nil
}
