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
	"github.com/educonnect/backend/pkg/mailer"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	// UnenrolledCourses lists courses at the student's level they have not
	// enrolled in yet, most popular first.
	UnenrolledCourses(ctx context.Context, userID string) (*dto.CourseListResponse, error)
	Enroll(ctx context.Context, userID string, input dto.EnrollInput) (*model.Enrollment, error)
	EnrolledCourses(ctx context.Context, userID string) ([]dto.EnrolledCourseResponse, error)
	// Unenroll deletes the enrollment only if it belongs to the user.
	Unenroll(ctx context.Context, userID, enrollID string) error
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	users       repository.UserRepository
	sequences   repository.SequenceRepository
	mail        mailer.Mailer
}

func NewEnrollmentService(
	enrollments repository.EnrollmentRepository,
	courses repository.CourseRepository,
	users repository.UserRepository,
	sequences repository.SequenceRepository,
	mail mailer.Mailer,
) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		users:       users,
		sequences:   sequences,
		mail:        mail,
	}
}

func (s *enrollmentService) UnenrolledCourses(ctx context.Context, userID string) (*dto.CourseListResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	courses, err := s.courses.FindUnenrolledByLevel(ctx, user.Semester, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	return &dto.CourseListResponse{
		Courses:     courses,
		UserDetails: user,
	}, nil
}

func (s *enrollmentService) Enroll(ctx context.Context, userID string, input dto.EnrollInput) (*model.Enrollment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	course, err := s.courses.FindByID(ctx, input.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	enrolled, err := s.enrollments.ExistsByUserAndCourse(ctx, userID, course.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	if enrolled {
		return nil, apperror.ErrAlreadyEnrolled
	}

	enrollID, err := s.sequences.Next(ctx, repository.EntityEnrollment)
	if err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		EnrollID: enrollID,
		UserID:   userID,
		CourseID: course.CourseID,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	if err := s.courses.IncrementPopularity(ctx, course.CourseID); err != nil {
		log.Printf("failed to increment popularity for course %s: %v", course.CourseID, err)
	}

	// The enrollment is committed at this point. A failed confirmation email
	// must not undo it.
	if err := s.mail.SendEnrollmentConfirmation(ctx, user.Email, user.Name, course.CourseName); err != nil {
		log.Printf("failed to send enrollment confirmation to %s: %v", user.Email, err)
	}

	return enrollment, nil
}

func (s *enrollmentService) EnrolledCourses(ctx context.Context, userID string) ([]dto.EnrolledCourseResponse, error) {
	enrollments, err := s.enrollments.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	responses := make([]dto.EnrolledCourseResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, dto.EnrolledCourseResponse{
			EnrollID:   e.EnrollID,
			CourseID:   e.Course.CourseID,
			CourseName: e.Course.CourseName,
			Category:   e.Course.Category,
			Level:      e.Course.Level,
		})
	}
	return responses, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, userID, enrollID string) error {
	// Scoped to the requesting user: an enrollment that exists for another
	// subject is indistinguishable from one that does not exist.
	enrollment, err := s.enrollments.FindByIDAndUser(ctx, enrollID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	if err := s.enrollments.Delete(ctx, enrollment.EnrollID); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return nil
}
