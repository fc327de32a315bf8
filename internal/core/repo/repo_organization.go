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

	"gorm.io/gorm"

	"github.com/orebase/orebase/internal/core/consts"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/cache"
	"github.com/orebase/orebase/pkg/database"
)

type IOrganizationRepository interface {
	CreateOrganization(org *model.Organization, ownerMember *model.OrganizationMember) error
	GetOrganization(orgId string) (*model.Organization, error)
	ListOrganizations(includeHistory bool, offset, pageSize int) ([]model.Organization, int64, error)
	ListOrganizationsByUser(userId string) ([]model.Organization, error)
	UpdateOrganization(orgId string, org *model.Organization) error
	DeleteOrganization(orgId string) error
}

type OrganizationRepo struct {
	db       database.IDatabase
	orgModel *model.Organization
	orgQuery *cache.CachedQuery[*model.Organization]
}

func NewOrganizationRepo(db database.IDatabase, c cache.ICache) IOrganizationRepository {
	or := &OrganizationRepo{
		db:       db,
		orgModel: &model.Organization{},
	}
	or.orgQuery = cache.NewCachedQuery[*model.Organization](c,
		func(params ...any) string { return consts.OrgInfoKey + params[0].(string) },
		nil,
		cache.WithLogPrefix[*model.Organization]("[OrganizationRepo]"),
	)
	return or
}

// CreateOrganization inserts the organization together with the
// creator's owner membership in one transaction.
func (or *OrganizationRepo) CreateOrganization(org *model.Organization, ownerMember *model.OrganizationMember) error {
	return or.db.Database().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		return tx.Create(ownerMember).Error
	})
}

func (or *OrganizationRepo) GetOrganization(orgId string) (*model.Organization, error) {
	return or.orgQuery.With(func(ctx context.Context) (*model.Organization, error) {
		var org = &model.Organization{}
		err := or.db.Database().WithContext(ctx).Table(or.orgModel.TableName()).
			Where("org_id = ?", orgId).First(org).Error
		if err != nil {
			return nil, err
		}
		return org, nil
	}).Get(context.Background(), orgId)
}

func (or *OrganizationRepo) ListOrganizations(includeHistory bool, offset, pageSize int) ([]model.Organization, int64, error) {
	var orgs []model.Organization
	var count int64

	db := or.db.Database()
	if includeHistory {
		db = db.Unscoped()
	}
	db = db.Model(or.orgModel)
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("id desc").Offset(offset).Limit(pageSize).Find(&orgs).Error
	return orgs, count, err
}

func (or *OrganizationRepo) ListOrganizationsByUser(userId string) ([]model.Organization, error) {
	var orgs []model.Organization
	memberModel := &model.OrganizationMember{}
	err := or.db.Database().Table(or.orgModel.TableName()).
		Joins("JOIN "+memberModel.TableName()+" m ON m.org_id = "+or.orgModel.TableName()+".org_id").
		Where("m.user_id = ? AND m.deleted_at IS NULL", userId).
		Find(&orgs).Error
	return orgs, err
}

func (or *OrganizationRepo) UpdateOrganization(orgId string, org *model.Organization) error {
	err := or.db.Database().Table(or.orgModel.TableName()).
		Where("org_id = ?", orgId).
		Omit("org_id", "owner_user_id", "created_at").
		Updates(org).Error
	if err != nil {
		return err
	}
	_ = or.orgQuery.Invalidate(context.Background(), orgId)
	return nil
}

// DeleteOrganization tombstones the organization and cascades the
// tombstone to its members and custom roles atomically. A partial
// cascade would leave members outliving their organization, so all
// three deletes commit or none do.
func (or *OrganizationRepo) DeleteOrganization(orgId string) error {
	err := or.db.Database().Transaction(func(tx *gorm.DB) error {
		res := tx.Where("org_id = ?", orgId).Delete(&model.Organization{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already tombstoned, nothing to cascade
			return nil
		}
		if err := tx.Where("org_id = ?", orgId).Delete(&model.OrganizationMember{}).Error; err != nil {
			return err
		}
		return tx.Where("org_id = ?", orgId).Delete(&model.OrganizationRole{}).Error
	})
	if err != nil {
		return err
	}
	_ = or.orgQuery.Invalidate(context.Background(), orgId)
	return nil
}
