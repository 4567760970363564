package repository

import (
	"context"

	"github.com/educonnect/backend/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	// FindByIDAndUser looks up an enrollment only within the given user's
	// records, so one subject can never see or touch another's enrollment.
	FindByIDAndUser(ctx context.Context, enrollID, userID string) (*model.Enrollment, error)
	// FindByUser returns the user's enrollments with courses preloaded,
	// newest first.
	FindByUser(ctx context.Context, userID string) ([]*model.Enrollment, error)
	ExistsByUserAndCourse(ctx context.Context, userID, courseID string) (bool, error)
	Delete(ctx context.Context, enrollID string) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) FindByIDAndUser(ctx context.Context, enrollID, userID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("enrollid = ? AND userid = ?", enrollID, userID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindByUser(ctx context.Context, userID string) ([]*model.Enrollment, error) {
	var enrollments []*model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("userid = ?", userID).
		Order("enrollment_date DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("userid = ? AND courseid = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, enrollID string) error {
	return r.db.WithContext(ctx).Delete(&model.Enrollment{}, "enrollid = ?", enrollID).Error
}
