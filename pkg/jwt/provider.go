package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminTokenType = "admin"

var ErrMissingSecret = errors.New("jwt secret must be provided")

// JWTProvider issues HS256 tokens accepted by the admin API.
type JWTProvider struct {
	Secret    string
	AccessTTL time.Duration
}

func NewJWTProvider(secret string, accessTTL time.Duration) (*JWTProvider, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &JWTProvider{
		Secret:    secret,
		AccessTTL: accessTTL,
	}, nil
}

func (p *JWTProvider) GenerateAdminToken(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": adminTokenType,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(p.AccessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseAdminToken returns the subject of a valid, unexpired admin token.
func (p *JWTProvider) ParseAdminToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if claimType, ok := claims["type"].(string); !ok || claimType != adminTokenType {
		return "", errors.New("invalid token type")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("invalid subject")
	}
	return subject, nil
}
