package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SNMurthy2003/Task-Assigner/internal/config"
	"github.com/SNMurthy2003/Task-Assigner/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the caller identity decoded from a bearer token. Role is
// empty until the user has selected one; it reflects the role at issuance
// time, not the stored role, so a role change only takes effect once a
// fresh token is issued.
type Identity struct {
	UID      string
	Email    string
	Role     string
	FullName string
}

type TokenService interface {
	Issue(user *models.User) (string, error)
	Verify(tokenStr string) (*Identity, error)
}

type TokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(cfg config.AuthConfig) *TokenServiceImpl {
	return &TokenServiceImpl{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

func (s *TokenServiceImpl) Issue(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":      user.UID.String(),
		"email":    user.Email,
		"fullName": user.FullName,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	if user.Role != nil {
		claims["role"] = *user.Role
	} else {
		claims["role"] = nil
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenServiceImpl) Verify(tokenStr string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		return nil, ErrInvalidToken
	}

	identity := &Identity{UID: uid}
	identity.Email, _ = claims["email"].(string)
	identity.FullName, _ = claims["fullName"].(string)
	identity.Role, _ = claims["role"].(string)

	return identity, nil
}
