// Package auth signs and verifies the JWTs handed out at login and hashes the
// passwords they are issued against.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the account identifier and role on top of the
// registered iat/exp claims.
type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewClaims returns claims for the given account identity. Timestamps are
// filled in by Sign.
func NewClaims(userID string, role models.Role) Claims {
	return Claims{UserID: userID, Role: role}
}

// Signer signs and verifies HS256 tokens. The zero value is ready to use;
// now may be replaced in tests.
type Signer struct {
	now func() time.Time
}

func NewSigner() *Signer {
	return &Signer{now: time.Now}
}

func (s *Signer) clock() time.Time {
	if s == nil || s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Sign stamps claims with iat and exp = iat+validity and signs them with secretKey.
func (s *Signer) Sign(claims Claims, secretKey []byte, validity time.Duration) (string, error) {
	now := s.clock()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify parses tokenString, checking the HMAC signature against secretKey and
// the expiry. Expired tokens yield common.ErrTokenExpired, anything else
// common.ErrInvalidToken.
func (s *Signer) Verify(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
