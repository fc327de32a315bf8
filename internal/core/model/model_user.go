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

import "time"

type User struct {
	BaseModel
	UserId    string `gorm:"column:user_id;uniqueIndex" json:"userId"`
	Username  string `gorm:"column:username" json:"username"`
	FirstName string `gorm:"column:first_name" json:"firstName"`
	LastName  string `gorm:"column:last_name" json:"lastName"`
	Password  string `gorm:"column:password" json:"-"`
	Avatar    string `gorm:"column:avatar" json:"avatar"`
	Email     string `gorm:"column:email" json:"email"`
	Phone     string `gorm:"column:phone" json:"phone"`
	Role      string `gorm:"column:role;default:user" json:"role"` // global role: user/admin/owner/super_owner
	IsEnabled int    `gorm:"column:is_enabled;default:1" json:"isEnabled"`
	Banned    int    `gorm:"column:banned;default:0" json:"banned"`
	BanReason string `gorm:"column:ban_reason" json:"banReason,omitempty"`
}

func (User) TableName() string {
	return "t_user"
}

type Register struct {
	UserId    string `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Password  string `json:"password"`
}

type Login struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserInfo UserInfo          `json:"userInfo"`
	Token    map[string]string `json:"token"`
	ExpireAt int64             `json:"-"`
}

type UserInfo struct {
	UserId    string `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// TokenInfo is the session payload cached in redis.
type TokenInfo struct {
	UserId       string    `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	LoginAt      time.Time `json:"loginAt"`
}

type AddUserReq struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type SetRoleReq struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
}

type BanUserReq struct {
	UserId    string `json:"userId"`
	BanReason string `json:"banReason"`
}
