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
	"github.com/orebase/orebase/pkg/cache"
	"github.com/orebase/orebase/pkg/database"
)

// Repositories aggregates all repositories.
type Repositories struct {
	User       IUserRepository
	Org        IOrganizationRepository
	Member     IOrganizationMemberRepository
	OrgRole    IOrganizationRoleRepository
	Invitation IInvitationRepository
}

func NewRepositories(db database.IDatabase, cache cache.ICache) *Repositories {
	return &Repositories{
		User:       NewUserRepo(db, cache),
		Org:        NewOrganizationRepo(db, cache),
		Member:     NewOrganizationMemberRepo(db),
		OrgRole:    NewOrganizationRoleRepo(db),
		Invitation: NewInvitationRepo(db),
	}
}
