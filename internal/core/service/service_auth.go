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
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/internal/core/repo"
	"github.com/orebase/orebase/pkg/http"
	"github.com/orebase/orebase/pkg/http/jwt"
	"github.com/orebase/orebase/pkg/id"
	"github.com/orebase/orebase/pkg/log"
)

type AuthService struct {
	userRepo repo.IUserRepository
}

func NewAuthService(userRepo repo.IUserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

func (as *AuthService) Register(register *model.Register) error {
	if register.Username == "" || register.Password == "" {
		return errors.New(http.UsernameArePasswordIsRequired.Msg)
	}

	existing, _ := as.userRepo.GetUserByUsername(register.Username)
	if existing != "" {
		return errors.New(http.UserAlreadyExist.Msg)
	}

	register.UserId = id.GetUUIDWithoutDashes()
	if register.FirstName == "" {
		register.FirstName = register.Username
	}
	password, err := hashPassword(register.Password)
	if err != nil {
		return err
	}
	register.Password = password

	if err := as.userRepo.Register(register); err != nil {
		log.Errorw("failed to register user", "username", register.Username, "error", err)
		return err
	}
	return nil
}

func (as *AuthService) Login(login *model.Login, auth http.Auth) (*model.LoginResp, error) {
	userInfo, err := as.userRepo.Login(login)
	if err != nil {
		log.Errorw("login failed", "username", login.Username, "error", err)
		return nil, errors.New(http.UserNotExist.Msg)
	}
	if userInfo.Banned != 0 {
		log.Warnw("banned user attempted login", "userId", userInfo.UserId)
		return nil, errors.New(http.Forbidden.Msg)
	}

	if !comparePassword(userInfo.Password, login.Password) {
		return nil, errors.New(http.UserIncorrectPassword.Msg)
	}

	aToken, rToken, err := jwt.GenToken(userInfo.UserId, []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		log.Errorw("failed to generate tokens", "userId", userInfo.UserId, "error", err)
		return nil, err
	}

	now := time.Now()
	expireAt := now.Add(auth.AccessExpire).Unix()

	resp := &model.LoginResp{
		UserInfo: model.UserInfo{
			UserId:    userInfo.UserId,
			Username:  userInfo.Username,
			FirstName: userInfo.FirstName,
			LastName:  userInfo.LastName,
			Avatar:    userInfo.Avatar,
			Email:     userInfo.Email,
			Phone:     userInfo.Phone,
			Role:      userInfo.Role,
		},
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
			"expireAt":     fmt.Sprintf("%d", expireAt),
		},
		ExpireAt: expireAt,
	}

	tokenInfo := &model.TokenInfo{
		UserId:       userInfo.UserId,
		AccessToken:  aToken,
		RefreshToken: rToken,
		LoginAt:      now,
	}
	if err := as.userRepo.SetToken(userInfo.UserId, tokenInfo, auth); err != nil {
		log.Errorw("failed to store session", "userId", userInfo.UserId, "error", err)
		return nil, err
	}

	return resp, nil
}

func (as *AuthService) Logout(userId string, auth http.Auth) error {
	return as.userRepo.DelToken(userId, auth)
}

func (as *AuthService) Refresh(userId, rToken string, auth *http.Auth) (map[string]string, error) {
	token, err := jwt.RefreshToken(auth, userId, rToken)
	if err != nil {
		log.Errorw("failed to refresh token", "userId", userId, "error", err)
		return nil, err
	}

	expireAt := time.Now().Add(auth.AccessExpire).Unix()
	token["expireAt"] = fmt.Sprintf("%d", expireAt)

	tokenInfo := &model.TokenInfo{
		UserId:       userId,
		AccessToken:  token["accessToken"],
		RefreshToken: token["refreshToken"],
		LoginAt:      time.Now(),
	}
	if err := as.userRepo.SetToken(userId, tokenInfo, *auth); err != nil {
		log.Errorw("failed to store refreshed session", "userId", userId, "error", err)
		return token, err
	}

	return token, nil
}

func (as *AuthService) ResetPassword(userId, oldPassword, newPassword string) error {
	stored, err := as.userRepo.GetUserPassword(userId)
	if err != nil {
		return errors.New(http.UserNotExist.Msg)
	}
	if !comparePassword(stored, oldPassword) {
		return errors.New(http.UserIncorrectPassword.Msg)
	}
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return as.userRepo.ResetPassword(userId, hashed)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func comparePassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
