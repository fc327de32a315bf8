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

package consts

// Redis key prefixes for authentication sessions.
const (
	// UserInfoKey prefixes the cached session of a signed-in user.
	UserInfoKey = "orebase:user:"

	// UserTokenKey prefixes the refresh token bound to a session.
	UserTokenKey = "orebase:token:"

	// OrgInfoKey prefixes the cached organization record.
	OrgInfoKey = "orebase:org:"
)
