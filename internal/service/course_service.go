package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/pkg/apperror"
	"gorm.io/gorm"
)

type CourseService interface {
	// List returns every course ordered by identifier, together with the
	// resolved details of the requesting subject.
	List(ctx context.Context, subjectID string, role model.Role) (*dto.CourseListResponse, error)
	Create(ctx context.Context, input dto.CourseInput) (*model.Course, error)
	Update(ctx context.Context, courseID string, input dto.CourseInput) (*model.Course, error)
	// Delete removes a course and returns the deleted record.
	Delete(ctx context.Context, courseID string) (*model.Course, error)
}

type courseService struct {
	courses   repository.CourseRepository
	sequences repository.SequenceRepository
	subjects  SubjectResolver
}

func NewCourseService(courses repository.CourseRepository, sequences repository.SequenceRepository, subjects SubjectResolver) CourseService {
	return &courseService{
		courses:   courses,
		sequences: sequences,
		subjects:  subjects,
	}
}

func (s *courseService) List(ctx context.Context, subjectID string, role model.Role) (*dto.CourseListResponse, error) {
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	details, err := s.subjects.Resolve(ctx, subjectID, role)
	if err != nil {
		return nil, err
	}

	return &dto.CourseListResponse{
		Courses:     courses,
		UserDetails: details,
	}, nil
}

func (s *courseService) Create(ctx context.Context, input dto.CourseInput) (*model.Course, error) {
	courseID, err := s.sequences.Next(ctx, repository.EntityCourse)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		CourseID:   courseID,
		CourseName: input.CourseName,
		Category:   input.Category,
		Level:      input.Level,
		Popularity: 0,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, courseID string, input dto.CourseInput) (*model.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	course.CourseName = input.CourseName
	course.Category = input.Category
	course.Level = input.Level

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	deleted, err := s.courses.Delete(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	if !deleted {
		return nil, apperror.ErrNotFound
	}
	return course, nil
}
