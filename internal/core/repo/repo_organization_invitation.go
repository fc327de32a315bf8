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
	"gorm.io/gorm"

	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/database"
	"github.com/orebase/orebase/pkg/statemachine"
)

type IInvitationRepository interface {
	CreateInvitation(invitation *model.OrganizationInvitation) error
	GetInvitation(invitationId string) (*model.OrganizationInvitation, error)
	ListInvitations(orgId string, includeHistory bool, offset, pageSize int) ([]model.OrganizationInvitation, int64, error)
	ListInvitationsByEmail(email string) ([]model.OrganizationInvitation, error)
	UpdateInvitationStatus(invitationId string, status statemachine.InvitationStatus) error
	AcceptInvitation(invitationId string, member *model.OrganizationMember) error
	RemoveInvitation(invitationId string) error
}

type InvitationRepo struct {
	db              database.IDatabase
	invitationModel *model.OrganizationInvitation
}

func NewInvitationRepo(db database.IDatabase) IInvitationRepository {
	return &InvitationRepo{
		db:              db,
		invitationModel: &model.OrganizationInvitation{},
	}
}

func (ir *InvitationRepo) CreateInvitation(invitation *model.OrganizationInvitation) error {
	return ir.db.Database().Create(invitation).Error
}

func (ir *InvitationRepo) GetInvitation(invitationId string) (*model.OrganizationInvitation, error) {
	var invitation = &model.OrganizationInvitation{}
	err := ir.db.Database().Table(ir.invitationModel.TableName()).
		Where("invitation_id = ?", invitationId).First(invitation).Error
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

// ListInvitations pages through an organization's invitations. With
// includeHistory the query drops the soft delete scope so resolved and
// revoked invitations show up as well.
func (ir *InvitationRepo) ListInvitations(orgId string, includeHistory bool, offset, pageSize int) ([]model.OrganizationInvitation, int64, error) {
	var invitations []model.OrganizationInvitation
	var count int64

	db := ir.db.Database()
	if includeHistory {
		db = db.Unscoped()
	}
	db = db.Model(ir.invitationModel).Where("org_id = ?", orgId)
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("id desc").Offset(offset).Limit(pageSize).Find(&invitations).Error
	return invitations, count, err
}

func (ir *InvitationRepo) ListInvitationsByEmail(email string) ([]model.OrganizationInvitation, error) {
	var invitations []model.OrganizationInvitation
	err := ir.db.Database().Table(ir.invitationModel.TableName()).
		Where("email = ? AND status = ?", email, statemachine.InvitationPending).
		Order("id desc").Find(&invitations).Error
	return invitations, err
}

// UpdateInvitationStatus moves a pending invitation to a terminal
// status. The write is conditional on the pending state so a resolved
// invitation can never be resolved again, whichever request loses the
// race.
func (ir *InvitationRepo) UpdateInvitationStatus(invitationId string, status statemachine.InvitationStatus) error {
	res := ir.db.Database().Table(ir.invitationModel.TableName()).
		Where("invitation_id = ? AND status = ?", invitationId, statemachine.InvitationPending).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AcceptInvitation resolves the invitation and enrolls the member in
// one transaction. Either both rows commit or neither does, so an
// accepted invitation never exists without its membership.
func (ir *InvitationRepo) AcceptInvitation(invitationId string, member *model.OrganizationMember) error {
	return ir.db.Database().Transaction(func(tx *gorm.DB) error {
		res := tx.Table(ir.invitationModel.TableName()).
			Where("invitation_id = ? AND status = ?", invitationId, statemachine.InvitationPending).
			Update("status", string(statemachine.InvitationAccepted))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(member).Error
	})
}

func (ir *InvitationRepo) RemoveInvitation(invitationId string) error {
	return ir.db.Database().
		Where("invitation_id = ?", invitationId).
		Delete(ir.invitationModel).Error
}
