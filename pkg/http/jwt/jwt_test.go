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

package jwt

import (
	"testing"
	"time"

	"github.com/orebase/orebase/pkg/http"
)

func TestGenAndParseToken(t *testing.T) {
	userId := "u-100"
	secretKey := "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

	aToken, rToken, err := GenToken(userId, []byte(secretKey), time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}
	if aToken == "" || rToken == "" {
		t.Fatal("expected both tokens to be issued")
	}

	claims, err := ParseToken(aToken, secretKey)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserId != userId {
		t.Errorf("claims.UserId = %s, want %s", claims.UserId, userId)
	}
	if claims.Issuer != "orebase" {
		t.Errorf("claims.Issuer = %s, want orebase", claims.Issuer)
	}
}

func TestParseToken_WrongKey(t *testing.T) {
	aToken, _, err := GenToken("u-100", []byte("secret-a"), time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}

	if _, err := ParseToken(aToken, "secret-b"); err == nil {
		t.Error("expected parsing with wrong key to fail")
	}
}

func TestParseToken_Expired(t *testing.T) {
	aToken, _, err := GenToken("u-100", []byte("secret-a"), -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}

	if _, err := ParseToken(aToken, "secret-a"); err == nil {
		t.Error("expected expired token to fail")
	}
}

func TestRefreshToken(t *testing.T) {
	secretKey := "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"
	auth := &http.Auth{
		SecretKey:     secretKey,
		AccessExpire:  time.Hour,
		RefreshExpire: 2 * time.Hour,
	}

	_, rToken, err := GenToken("u-100", []byte(secretKey), time.Hour, 2*time.Hour)
	if err != nil {
		t.Fatalf("GenToken error: %v", err)
	}

	pair, err := RefreshToken(auth, "u-100", rToken)
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pair["accessToken"] == "" || pair["refreshToken"] == "" {
		t.Error("expected a new token pair")
	}

	if _, err := RefreshToken(auth, "u-100", "not-a-token"); err == nil {
		t.Error("expected refresh with a bogus token to fail")
	}
}
