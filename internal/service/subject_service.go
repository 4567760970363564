package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/pkg/apperror"
	"gorm.io/gorm"
)

// SubjectResolver fetches the authoritative record behind a session claim.
// Absence is not an error: a nil result with a nil error means no such
// record, callers decide whether that is fatal.
type SubjectResolver interface {
	Resolve(ctx context.Context, subjectID string, role model.Role) (interface{}, error)
}

type subjectResolver struct {
	users  repository.UserRepository
	admins repository.AdminRepository
}

func NewSubjectResolver(users repository.UserRepository, admins repository.AdminRepository) SubjectResolver {
	return &subjectResolver{
		users:  users,
		admins: admins,
	}
}

func (s *subjectResolver) Resolve(ctx context.Context, subjectID string, role model.Role) (interface{}, error) {
	switch role {
	case model.RoleAdmin:
		admin, err := s.admins.FindByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
		}
		return admin, nil
	case model.RoleStudent:
		user, err := s.users.FindByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
		}
		return user, nil
	}
	return nil, apperror.ErrInvalidRole
}
