package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/pkg/apperror"
	"github.com/educonnect/backend/pkg/storage"
	"gorm.io/gorm"
)

type ProfileService interface {
	UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput, picture *dto.ImageFile) (*model.User, error)
}

type profileService struct {
	users        repository.UserRepository
	imageStorage storage.ImageStorage
	uploadFolder string
}

func NewProfileService(users repository.UserRepository, imageStorage storage.ImageStorage, uploadFolder string) ProfileService {
	return &profileService{
		users:        users,
		imageStorage: imageStorage,
		uploadFolder: uploadFolder,
	}
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput, picture *dto.ImageFile) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	if input.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
			return nil, apperror.ErrDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
		}
	}

	if picture != nil && picture.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, picture.Reader, s.uploadFolder, picture.FileName)
		if err != nil {
			return nil, err
		}

		// The new image is in place, the old one is garbage either way.
		if user.ProfilePictureURL != nil {
			if err := s.imageStorage.DeleteImage(ctx, *user.ProfilePictureURL); err != nil {
				log.Printf("failed to delete previous profile picture for %s: %v", userID, err)
			}
		}
		user.ProfilePictureURL = &url
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Semester = input.Semester

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return user, nil
}
