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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orebase/orebase/internal/core/model"
	"github.com/orebase/orebase/pkg/http"
)

var testAuth = http.Auth{
	SecretKey:     "test-secret",
	AccessExpire:  time.Hour,
	RefreshExpire: 24 * time.Hour,
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	as := NewAuthService(users)

	err := as.Register(&model.Register{Username: "bob", Password: "hunter2", Email: "bob@example.com"})
	require.NoError(t, err)

	resp, err := as.Login(&model.Login{Username: "bob", Password: "hunter2"}, testAuth)
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.UserInfo.Username)
	assert.NotEmpty(t, resp.Token["accessToken"])
	assert.NotEmpty(t, resp.Token["refreshToken"])
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	as := NewAuthService(users)

	require.NoError(t, as.Register(&model.Register{Username: "bob", Password: "hunter2"}))

	_, err := as.Login(&model.Login{Username: "bob", Password: "wrong"}, testAuth)
	assert.EqualError(t, err, http.UserIncorrectPassword.Msg)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newFakeUserRepo()
	as := NewAuthService(users)

	require.NoError(t, as.Register(&model.Register{Username: "bob", Password: "hunter2"}))
	err := as.Register(&model.Register{Username: "bob", Password: "other"})
	assert.EqualError(t, err, http.UserAlreadyExist.Msg)
}

func TestLoginBannedUser(t *testing.T) {
	users := newFakeUserRepo()
	as := NewAuthService(users)

	require.NoError(t, as.Register(&model.Register{Username: "bob", Password: "hunter2"}))
	userId, err := users.GetUserByUsername("bob")
	require.NoError(t, err)
	require.NoError(t, users.BanUser(userId, "abuse"))

	_, err = as.Login(&model.Login{Username: "bob", Password: "hunter2"}, testAuth)
	assert.EqualError(t, err, http.Forbidden.Msg)
}

func TestResetPassword(t *testing.T) {
	users := newFakeUserRepo()
	as := NewAuthService(users)

	require.NoError(t, as.Register(&model.Register{Username: "bob", Password: "hunter2"}))
	userId, err := users.GetUserByUsername("bob")
	require.NoError(t, err)

	assert.EqualError(t, as.ResetPassword(userId, "wrong", "newpass"), http.UserIncorrectPassword.Msg)
	require.NoError(t, as.ResetPassword(userId, "hunter2", "newpass"))

	_, err = as.Login(&model.Login{Username: "bob", Password: "newpass"}, testAuth)
	assert.NoError(t, err)
}
