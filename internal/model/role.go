package model

import "github.com/educonnect/backend/pkg/apperror"

// Role is the closed set of principals the API knows about. It is validated
// once at the boundary; everything past that trusts the value.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole maps a client-supplied role string onto the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", apperror.ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}
