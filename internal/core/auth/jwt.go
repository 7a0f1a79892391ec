package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL 令牌固定有效期，无刷新机制
const DefaultTTL = 2 * time.Hour

type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"` // "Usuario" or "Criador"
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
	Now      func() time.Time // 测试可注入
}

func (j *JWTer) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

func (j *JWTer) ttl() time.Duration {
	if j.TTL <= 0 {
		return DefaultTTL
	}
	return j.TTL
}

func (j *JWTer) Issue(email string, role Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("issue token: unknown role %q", role)
	}
	now := j.now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    j.Issuer,
			Audience:  jwt.ClaimStrings{j.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse 校验签名、issuer、audience、过期时间后才信任 role
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	},
		jwt.WithIssuer(j.Issuer),
		jwt.WithAudience(j.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		if !c.Role.Valid() {
			return nil, errors.New("invalid role claim")
		}
		return c, nil
	}
	return nil, errors.New("invalid token")
}
