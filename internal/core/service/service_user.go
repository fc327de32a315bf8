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

package service

import (
	"errors"

	"github.com/orebase/orebase/internal/core/authz"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/internal/core/repo"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/id"
	"github.com/orebase/orebase/pkg/log"
)

// UserService carries the platform level user administration. Every
// mutation is checked against the caller's global role before it
// touches the store.
type UserService struct {
	userRepo repo.IUserRepository
	gateway  *authz.Gateway
}

func NewUserService(userRepo repo.IUserRepository, gateway *authz.Gateway) *UserService {
	return &UserService{
		userRepo: userRepo,
		gateway:  gateway,
	}
}

func (us *UserService) GetUserInfo(userId string) (*model.UserInfo, error) {
	return us.userRepo.FetchUserInfo(userId)
}

// GetUserRole resolves a user's platform role.
func (us *UserService) GetUserRole(userId string) (string, error) {
	return us.userRepo.GetUserRole(userId)
}

func (us *UserService) ListUsers(actorId string, includeHistory bool, pageNum, pageSize int) ([]model.User, int64, error) {
	actorRole, err := us.userRepo.GetUserRole(actorId)
	if err != nil {
		return nil, 0, errors.New(http.UserNotExist.Msg)
	}
	if d := us.gateway.CheckGlobalCapability(actorRole, authz.ResourceAdminUsers, authz.ActionRead); !d.Allowed {
		if d = us.gateway.CheckGlobalCapability(actorRole, authz.ResourceOwnerUsers, authz.ActionRead); !d.Allowed {
			return nil, 0, errors.New(http.PermissionDenied.Msg)
		}
	}
	offset := (pageNum - 1) * pageSize
	return us.userRepo.GetUserList(includeHistory, offset, pageSize)
}

func (us *UserService) AddUser(actorId string, req *model.AddUserReq) (*model.User, error) {
	actorRole, err := us.userRepo.GetUserRole(actorId)
	if err != nil {
		return nil, errors.New(http.UserNotExist.Msg)
	}
	newRole := req.Role
	if newRole == "" {
		newRole = authz.RoleUser
	}
	// creating a user at a given role is a role grant from scratch
	if d := us.gateway.CheckGlobal(actorRole, authz.RoleUser, newRole); !d.Allowed {
		log.Warnw("add user denied", "actor", actorId, "role", newRole, "reason", d.Reason)
		return nil, errors.New(http.PermissionDenied.Msg)
	}

	existing, _ := us.userRepo.GetUserByUsername(req.Username)
	if existing != "" {
		return nil, errors.New(http.UserAlreadyExist.Msg)
	}

	password, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		UserId:    id.GetUUIDWithoutDashes(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  password,
		Avatar:    req.Avatar,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      newRole,
		IsEnabled: 1,
	}
	if err := us.userRepo.AddUser(user); err != nil {
		log.Errorw("failed to add user", "username", req.Username, "error", err)
		return nil, err
	}
	return user, nil
}

// SetUserRole changes a user's global role. The write is conditional
// on the role the decision was made against, so two concurrent role
// changes cannot interleave into an unauthorized state.
func (us *UserService) SetUserRole(actorId string, req *model.SetRoleReq) error {
	actorRole, err := us.userRepo.GetUserRole(actorId)
	if err != nil {
		return errors.New(http.UserNotExist.Msg)
	}
	targetRole, err := us.userRepo.GetUserRole(req.UserId)
	if err != nil {
		return errors.New(http.UserNotExist.Msg)
	}

	if d := us.gateway.CheckGlobal(actorRole, targetRole, req.Role); !d.Allowed {
		log.Warnw("role change denied",
			"actor", actorId,
			"target", req.UserId,
			"newRole", req.Role,
			"reason", d.Reason,
		)
		return errors.New(http.PermissionDenied.Msg)
	}

	if err := us.userRepo.SetUserRole(req.UserId, targetRole, req.Role); err != nil {
		log.Errorw("role change lost the write race", "target", req.UserId, "error", err)
		return errors.New(http.InvalidStatusParameter.Msg)
	}
	return nil
}

func (us *UserService) BanUser(actorId string, req *model.BanUserReq) error {
	if err := us.checkUserAction(actorId, req.UserId); err != nil {
		return err
	}
	return us.userRepo.BanUser(req.UserId, req.BanReason)
}

func (us *UserService) UnbanUser(actorId, userId string) error {
	if err := us.checkUserAction(actorId, userId); err != nil {
		return err
	}
	return us.userRepo.UnbanUser(userId)
}

// RemoveUser tombstones the account. Removing an already removed user
// is a no-op.
func (us *UserService) RemoveUser(actorId, userId string) error {
	if err := us.checkUserAction(actorId, userId); err != nil {
		return err
	}
	return us.userRepo.RemoveUser(userId)
}

func (us *UserService) UpdateUser(userId string, user *model.User) error {
	return us.userRepo.UpdateUser(userId, user)
}

// checkUserAction gates a non role-changing action of actor on target.
func (us *UserService) checkUserAction(actorId, targetId string) error {
	actorRole, err := us.userRepo.GetUserRole(actorId)
	if err != nil {
		return errors.New(http.UserNotExist.Msg)
	}
	targetRole, err := us.userRepo.GetUserRole(targetId)
	if err != nil {
		return errors.New(http.UserNotExist.Msg)
	}
	if d := us.gateway.CheckGlobal(actorRole, targetRole, ""); !d.Allowed {
		log.Warnw("user action denied", "actor", actorId, "target", targetId, "reason", d.Reason)
		return errors.New(http.PermissionDenied.Msg)
	}
	return nil
}
