package jwt

import (
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"hit-timetable/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "zhangsan")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "zhangsan" {
		t.Errorf("用户信息错误: %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("期望 TokenType=access，实际=%s", claims.TokenType)
	}
	if claims.Issuer != "hit-timetable" {
		t.Errorf("期望 Issuer=hit-timetable，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
	if ttl := claims.RemainingTTL(time.Now()); ttl <= 14*time.Minute || ttl > 15*time.Minute {
		t.Errorf("剩余有效期异常: %v", ttl)
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("user-1", "zhangsan")
	if err != nil {
		t.Fatalf("GenerateRefreshToken 失败: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("期望 TokenType=refresh，实际=%s", claims.TokenType)
	}
	expected := time.Now().Add(7 * 24 * time.Hour)
	if diff := claims.ExpiresAt.Sub(expected); diff > time.Minute || diff < -time.Minute {
		t.Errorf("过期时间偏差过大: %v", diff)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: -time.Minute,
	})
	token, err := m.GenerateAccessToken("user-1", "zhangsan")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际 %v", err)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	m := newTestManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-0123456789",
		AccessTokenTTL: time.Minute,
	})
	foreign, _ := other.GenerateAccessToken("user-1", "zhangsan")

	for name, token := range map[string]string{
		"空字符串": "",
		"乱码":   "not.a.token",
		"签名不符": foreign,
	} {
		if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("%s: 期望 ErrTokenInvalid，实际 %v", name, err)
		}
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	m := newTestManager()
	claims := Claims{
		UserID:    "user-1",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Minute)),
			Issuer:    "someone-else",
		},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际 %v", err)
	}
}

func TestRemainingTTL_NoExpiry(t *testing.T) {
	c := &Claims{}
	if got := c.RemainingTTL(time.Now()); got != 0 {
		t.Errorf("无过期时间时期望 0，实际 %v", got)
	}
}
