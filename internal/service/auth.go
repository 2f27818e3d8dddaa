// 서비스 간 인증 로직 정의
// 공유 시크릿으로 HS256 서비스 토큰을 발급/검증
// 호출자는 사람이 아니라 워크플로우 엔진/운영 도구이므로 machine-to-machine 용도만 지원

package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/checkout-sre/backend/internal/config"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMisconfigured = errors.New("auth config invalid")
)

// AuthService 구조체 정의
type AuthService struct {
	secret       []byte
	accessTTL    time.Duration
	clientID     string
	clientSecret string
}

type serviceClaims struct {
	jwt.RegisteredClaims
}

// AuthService 객체 생성
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &AuthService{
		secret:       []byte(cfg.JWTSecret),
		accessTTL:    accessTTL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}, nil
}

// AccessTTL - 발급 토큰 수명
func (s *AuthService) AccessTTL() time.Duration {
	return s.accessTTL
}

// IssueServiceToken - 클라이언트 자격 증명 검증 후 서비스 토큰 발급
func (s *AuthService) IssueServiceToken(clientID, clientSecret string) (string, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return "", fmt.Errorf("%w: AUTH_CLIENT_ID/AUTH_CLIENT_SECRET not configured", ErrMisconfigured)
	}

	idOK := subtle.ConstantTimeCompare([]byte(clientID), []byte(s.clientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(clientSecret), []byte(s.clientSecret)) == 1
	if !idOK || !secretOK {
		return "", ErrUnauthorized
	}

	now := time.Now()
	claims := serviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseAccessToken - 서비스 토큰 검증 후 subject 반환
func (s *AuthService) ParseAccessToken(tokenString string) (string, error) {
	var claims serviceClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
