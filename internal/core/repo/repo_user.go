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
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/orebase/orebase/internal/core/consts"
	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/cache"
	"github.com/orebase/orebase/pkg/database"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/log"
	"github.com/orebase/orebase/pkg/safe"
)

type IUserRepository interface {
	AddUser(user *model.User) error
	Register(register *model.Register) error
	Login(login *model.Login) (*model.User, error)
	UpdateUser(userId string, u *model.User) error
	FetchUserInfo(userId string) (*model.UserInfo, error)
	GetUserByUserId(userId string) (*model.User, error)
	GetUserByUsername(username string) (string, error)
	GetUserList(includeHistory bool, offset, pageSize int) ([]model.User, int64, error)
	GetUserRole(userId string) (string, error)
	SetUserRole(userId, oldRole, newRole string) error
	BanUser(userId, banReason string) error
	UnbanUser(userId string) error
	RemoveUser(userId string) error
	GetUserPassword(userId string) (string, error)
	ResetPassword(userId, newPasswordHash string) error
	SetToken(userId string, tokenInfo *model.TokenInfo, auth http.Auth) error
	DelToken(userId string, auth http.Auth) error
}

type UserRepo struct {
	db        database.IDatabase
	cache     cache.ICache
	userModel *model.User
}

func NewUserRepo(db database.IDatabase, cache cache.ICache) IUserRepository {
	return &UserRepo{
		db:        db,
		cache:     cache,
		userModel: &model.User{},
	}
}

func (ur *UserRepo) AddUser(user *model.User) error {
	return ur.db.Database().Create(user).Error
}

func (ur *UserRepo) Register(register *model.Register) error {
	u := model.User{
		UserId:    register.UserId,
		Username:  register.Username,
		FirstName: register.FirstName,
		LastName:  register.LastName,
		Email:     register.Email,
		Avatar:    register.Avatar,
		Password:  register.Password,
		Role:      "user",
		IsEnabled: 1,
	}
	return ur.db.Database().Create(&u).Error
}

func (ur *UserRepo) Login(login *model.Login) (*model.User, error) {
	var u = &model.User{}
	err := ur.db.Database().Table(ur.userModel.TableName()).
		Where("(username = ? OR email = ?)", login.Username, login.Email).
		First(u).Error
	if err != nil {
		return nil, errors.New(http.UserNotExist.Msg)
	}
	return u, nil
}

// UpdateUser updates profile fields. Identity and credential columns
// are never touched here.
func (ur *UserRepo) UpdateUser(userId string, u *model.User) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Omit("user_id", "username", "password", "role", "created_at").
		Updates(u).Error
}

func (ur *UserRepo) FetchUserInfo(userId string) (*model.UserInfo, error) {
	ctx := context.Background()
	key := consts.UserInfoKey + userId
	u := &model.UserInfo{UserId: userId}

	if ur.cache != nil {
		userInfoStr, err := ur.cache.Get(ctx, key).Result()
		if err == nil && userInfoStr != "" {
			if err := sonic.UnmarshalString(userInfoStr, u); err != nil {
				log.Errorw("failed to unmarshal user info from redis", "userId", userId, "error", err)
			} else {
				return u, nil
			}
		}
	}

	err := ur.db.Database().Table(ur.userModel.TableName()).
		Select("user_id, username, first_name, last_name, avatar, email, phone, role").
		Where("user_id = ?", userId).First(u).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	if ur.cache != nil {
		safe.Go(func() {
			userInfoJson, err := sonic.MarshalString(u)
			if err != nil {
				log.Errorw("failed to marshal user info", "userId", userId, "error", err)
				return
			}
			if err := ur.cache.Set(context.Background(), key, userInfoJson, time.Hour).Err(); err != nil {
				log.Errorw("failed to cache user info", "userId", userId, "error", err)
			}
		})
	}

	return u, nil
}

func (ur *UserRepo) GetUserByUserId(userId string) (*model.User, error) {
	var u = &model.User{}
	err := ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *UserRepo) GetUserByUsername(username string) (string, error) {
	var u = &model.User{}
	err := ur.db.Database().Table(ur.userModel.TableName()).Select("user_id").
		Where("username = ?", username).First(u).Error
	return u.UserId, err
}

func (ur *UserRepo) GetUserList(includeHistory bool, offset, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var count int64

	db := ur.db.Database()
	if includeHistory {
		db = db.Unscoped()
	}
	db = db.Model(ur.userModel)
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("id desc").Offset(offset).Limit(pageSize).Find(&users).Error
	return users, count, err
}

func (ur *UserRepo) GetUserRole(userId string) (string, error) {
	var u = &model.User{}
	err := ur.db.Database().Table(ur.userModel.TableName()).Select("role").
		Where("user_id = ?", userId).First(u).Error
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// SetUserRole changes the role with a conditional write keyed on the
// current role, so a stale authorization check cannot overwrite a
// concurrent promotion.
func (ur *UserRepo) SetUserRole(userId, oldRole, newRole string) error {
	res := ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ? AND role = ?", userId, oldRole).
		Update("role", newRole)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ur *UserRepo) BanUser(userId, banReason string) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Updates(map[string]any{"banned": 1, "ban_reason": banReason}).Error
}

func (ur *UserRepo) UnbanUser(userId string) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Updates(map[string]any{"banned": 0, "ban_reason": ""}).Error
}

// RemoveUser tombstones the user. Removing an already removed user
// matches no row and is a no-op.
func (ur *UserRepo) RemoveUser(userId string) error {
	return ur.db.Database().Where("user_id = ?", userId).Delete(ur.userModel).Error
}

func (ur *UserRepo) GetUserPassword(userId string) (string, error) {
	var u = &model.User{}
	err := ur.db.Database().Table(ur.userModel.TableName()).Select("password").
		Where("user_id = ?", userId).First(u).Error
	return u.Password, err
}

func (ur *UserRepo) ResetPassword(userId, newPasswordHash string) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("password", newPasswordHash).Error
}

// SetToken stores the session in redis for the access token lifetime.
func (ur *UserRepo) SetToken(userId string, tokenInfo *model.TokenInfo, auth http.Auth) error {
	tokenJson, err := sonic.MarshalString(tokenInfo)
	if err != nil {
		return err
	}
	key := auth.RedisKeyPrefix + userId
	return ur.cache.Set(context.Background(), key, tokenJson, auth.AccessExpire).Err()
}

func (ur *UserRepo) DelToken(userId string, auth http.Auth) error {
	key := auth.RedisKeyPrefix + userId
	return ur.cache.Del(context.Background(), key).Err()
}
