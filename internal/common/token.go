package common

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stemchat/internal/config"
)

// Claims represents the data stored in a session token.
type Claims struct {
	AccountID uint64 `json:"account_id"`
	Handle    string `json:"handle"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates session tokens. The auth middleware parses
// the token, then hands the subject string to the account resolver.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	ttl := time.Duration(cfg.Session.TokenTTL) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(cfg.Session.Secret),
		ttl:    ttl,
	}
}

func (tm *TokenManager) Generate(accountID uint64, handle string) (string, error) {
	claims := &Claims{
		AccountID: accountID,
		Handle:    handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "stemchat",
			Subject:   strconv.FormatUint(accountID, 10),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
