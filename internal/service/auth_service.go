package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/internal/token"
	"github.com/educonnect/backend/pkg/apperror"
	"github.com/educonnect/backend/pkg/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	// Login verifies credentials for the claimed role and issues a signed
	// session claim on success.
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Register(ctx context.Context, input dto.RegisterInput, picture *dto.ImageFile) (*model.User, error)
	ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error
}

type authService struct {
	users        repository.UserRepository
	admins       repository.AdminRepository
	sequences    repository.SequenceRepository
	imageStorage storage.ImageStorage
	tokens       *token.Manager
	uploadFolder string
}

func NewAuthService(
	users repository.UserRepository,
	admins repository.AdminRepository,
	sequences repository.SequenceRepository,
	imageStorage storage.ImageStorage,
	tokens *token.Manager,
	uploadFolder string,
) AuthService {
	return &authService{
		users:        users,
		admins:       admins,
		sequences:    sequences,
		imageStorage: imageStorage,
		tokens:       tokens,
		uploadFolder: uploadFolder,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	// Role is validated before any storage access.
	role, err := model.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	var subjectID, passwordHash string
	switch role {
	case model.RoleAdmin:
		admin, err := s.admins.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrInvalidCredentials
			}
			return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
		}
		subjectID, passwordHash = admin.AdminID, admin.Password
	case model.RoleStudent:
		user, err := s.users.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrInvalidCredentials
			}
			return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
		}
		subjectID, passwordHash = user.UserID, user.Password
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(input.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Issue(subjectID, role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: expiresAt,
	}, nil
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput, picture *dto.ImageFile) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.sequences.Next(ctx, repository.EntityUser)
	if err != nil {
		return nil, err
	}

	var pictureURL *string
	if picture != nil && picture.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, picture.Reader, s.uploadFolder, picture.FileName)
		if err != nil {
			return nil, err
		}
		pictureURL = &url
	}

	user := &model.User{
		UserID:            userID,
		Name:              input.Name,
		Email:             input.Email,
		Password:          string(hashedPassword),
		ProfilePictureURL: pictureURL,
		Semester:          input.Semester,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	return user, nil
}

func (s *authService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	if _, err := s.users.FindByEmail(ctx, input.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePasswordByEmail(ctx, input.Email, string(hashedPassword)); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return nil
}
