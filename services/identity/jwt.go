package identity

import (
	"fmt"
	"time"

	models "LoveForTennis/models/postgres"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims carried by access tokens. Role holds every role claim of the user.
type Claims struct {
	UserID string   `json:"sub"`
	Email  string   `json:"email"`
	Role   []string `json:"role"`
	jwt.RegisteredClaims
}

func (p *DefaultProvider) IssueAccessToken(user *models.User, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.opts.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.opts.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (p *DefaultProvider) ParseAccessToken(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// HasRole reports whether the token grants role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Role {
		if r == role {
			return true
		}
	}
	return false
}
