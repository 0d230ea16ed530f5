package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens() (*Tokens, error) {
	secret := os.Getenv("SAFEDRIVE_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("env SAFEDRIVE_JWT_SECRET is not set")
	}

	hours := 720
	expire := os.Getenv("SAFEDRIVE_JWT_EXPIRE_HOURS")
	if expire != "" {
		h, err := strconv.Atoi(expire)
		if err == nil && h > 0 {
			hours = h
		}
	}
	return &Tokens{[]byte(secret), time.Duration(hours) * time.Hour}, nil
}

// для тестов
func NewTokensWithSecret(secret string, ttl time.Duration) *Tokens {
	return &Tokens{[]byte(secret), ttl}
}

func (t *Tokens) Issue(userId uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userId.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
