// Package auth 提供会话令牌的签发与校验（HS256 JWT）以及口令散列.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSessionTTL = 7 * 24 * time.Hour

var (
	// ErrMissingSigningSecret 未提供签名密钥.
	ErrMissingSigningSecret = errors.New("auth: signing secret required")
	// ErrMissingSubject 令牌缺少 subject.
	ErrMissingSubject = errors.New("auth: subject required")
	// ErrMissingToken 请求未携带令牌.
	ErrMissingToken = errors.New("auth: token required")
	// ErrInvalidToken 令牌无效.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken 令牌已过期.
	ErrExpiredToken = errors.New("auth: token expired")
)

// SessionManagerConfig 配置会话令牌的签发与校验.
type SessionManagerConfig struct {
	SigningSecret []byte
	Issuer        string
	TTL           time.Duration
	// Clock 可注入的时钟，测试用；为空使用 time.Now.
	Clock func() time.Time
}

// SessionManager 签发并校验 HS256 会话令牌. 令牌的 subject 即用户 ID.
type SessionManager struct {
	signingSecret []byte
	issuer        string
	ttl           time.Duration
	clock         func() time.Time
}

// NewSessionManager 构造 SessionManager. 密钥是硬性要求.
func NewSessionManager(cfg SessionManagerConfig) (*SessionManager, error) {
	if len(cfg.SigningSecret) == 0 {
		return nil, ErrMissingSigningSecret
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &SessionManager{
		signingSecret: append([]byte(nil), cfg.SigningSecret...),
		issuer:        strings.TrimSpace(cfg.Issuer),
		ttl:           ttl,
		clock:         clock,
	}, nil
}

// Issue 为指定用户签发会话令牌，返回令牌串与过期时间.
func (m *SessionManager) Issue(userID string) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, ErrMissingSubject
	}

	now := m.clock().UTC()
	expiresAt := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.signingSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate 校验令牌并返回其中的用户 ID.
func (m *SessionManager) Validate(tokenString string) (string, error) {
	token := strings.TrimSpace(tokenString)
	if token == "" {
		return "", ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("%w: unexpected signing algorithm %s", ErrInvalidToken, t.Method.Alg())
			}

			return m.signingSecret, nil
		},
		jwt.WithTimeFunc(m.clock),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}

		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if parsed == nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	if m.issuer != "" && claims.Issuer != m.issuer {
		return "", ErrInvalidToken
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}

// TTL 返回会话有效期.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
