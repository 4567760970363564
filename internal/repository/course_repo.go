package repository

import (
	"context"

	"github.com/educonnect/backend/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	// FindAll returns every course ordered by identifier.
	FindAll(ctx context.Context) ([]*model.Course, error)
	// FindUnenrolledByLevel returns courses at the given level the user is
	// not enrolled in yet, most popular first.
	FindUnenrolledByLevel(ctx context.Context, level, userID string) ([]*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	// Delete removes a course and reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)
	IncrementPopularity(ctx context.Context, id string) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).First(&course, "courseid = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	if err := r.db.WithContext(ctx).Order("courseid").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) FindUnenrolledByLevel(ctx context.Context, level, userID string) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).
		Where("level = ?", level).
		Where("courseid NOT IN (?)",
			r.db.Model(&model.Enrollment{}).Select("courseid").Where("userid = ?", userID),
		).
		Order("popularity DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Course{}, "courseid = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *courseRepository) IncrementPopularity(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Course{}).
		Where("courseid = ?", id).
		Update("popularity", gorm.Expr("popularity + 1")).Error
}
