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

	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/database"
)

type IOrganizationMemberRepository interface {
	AddMember(member *model.OrganizationMember) error
	GetMember(orgId, userId string) (*model.OrganizationMember, error)
	ListMembers(orgId string, includeHistory bool, offset, pageSize int) ([]model.OrganizationMember, int64, error)
	ListUserMemberships(userId string) ([]model.OrganizationMember, error)
	UpdateMemberRole(orgId, userId, oldRole, newRole string) error
	RemoveMember(orgId, userId string) error

	// MemberRole implements authz.MemberSource.
	MemberRole(ctx context.Context, orgId, userId string) (string, bool, error)
}

type OrganizationMemberRepo struct {
	db          database.IDatabase
	memberModel *model.OrganizationMember
}

func NewOrganizationMemberRepo(db database.IDatabase) IOrganizationMemberRepository {
	return &OrganizationMemberRepo{
		db:          db,
		memberModel: &model.OrganizationMember{},
	}
}

func (mr *OrganizationMemberRepo) AddMember(member *model.OrganizationMember) error {
	return mr.db.Database().Create(member).Error
}

func (mr *OrganizationMemberRepo) GetMember(orgId, userId string) (*model.OrganizationMember, error) {
	var member = &model.OrganizationMember{}
	err := mr.db.Database().Table(mr.memberModel.TableName()).
		Where("org_id = ? AND user_id = ?", orgId, userId).First(member).Error
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers pages through an organization's memberships. With
// includeHistory the soft delete scope is dropped so removed members of
// a tombstoned organization stay auditable.
func (mr *OrganizationMemberRepo) ListMembers(orgId string, includeHistory bool, offset, pageSize int) ([]model.OrganizationMember, int64, error) {
	var members []model.OrganizationMember
	var count int64

	db := mr.db.Database()
	if includeHistory {
		db = db.Unscoped()
	}
	db = db.Model(mr.memberModel).Where("org_id = ?", orgId)
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("id asc").Offset(offset).Limit(pageSize).Find(&members).Error
	return members, count, err
}

// ListUserMemberships returns every active membership a user holds
// across organizations.
func (mr *OrganizationMemberRepo) ListUserMemberships(userId string) ([]model.OrganizationMember, error) {
	var members []model.OrganizationMember
	err := mr.db.Database().Table(mr.memberModel.TableName()).
		Where("user_id = ?", userId).
		Order("id asc").Find(&members).Error
	return members, err
}

// UpdateMemberRole changes the role with a conditional write keyed on
// the current role. A concurrent role change invalidates the
// precondition and the update matches nothing.
func (mr *OrganizationMemberRepo) UpdateMemberRole(orgId, userId, oldRole, newRole string) error {
	res := mr.db.Database().Table(mr.memberModel.TableName()).
		Where("org_id = ? AND user_id = ? AND role = ?", orgId, userId, oldRole).
		Update("role", newRole)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveMember tombstones the membership. Removing an already removed
// member is a no-op.
func (mr *OrganizationMemberRepo) RemoveMember(orgId, userId string) error {
	return mr.db.Database().
		Where("org_id = ? AND user_id = ?", orgId, userId).
		Delete(mr.memberModel).Error
}

// MemberRole returns the active membership role of a user, feeding
// the authorization resolver. Tombstoned memberships are invisible
// here through the default soft delete scope.
func (mr *OrganizationMemberRepo) MemberRole(ctx context.Context, orgId, userId string) (string, bool, error) {
	var member = &model.OrganizationMember{}
	err := mr.db.Database().WithContext(ctx).Table(mr.memberModel.TableName()).
		Select("role").
		Where("org_id = ? AND user_id = ?", orgId, userId).
		First(member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}
