package token

import (
	"fmt"
	"time"

	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed session claim: who the subject is and which role the
// credentials were verified against.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a claim for the subject with the configured expiry.
func (m *Manager) Issue(subjectID string, role model.Role) (string, int64, error) {
	expiresAt := time.Now().Add(m.ttl)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

// Verify checks signature and expiry and returns the decoded claims.
// Expired tokens fail closed, there is no refresh path.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperror.ErrInvalidToken
	}

	if _, err := model.ParseRole(claims.Role.String()); err != nil {
		return nil, apperror.ErrInvalidToken
	}

	return claims, nil
}
