package service

import (
	"context"
	"testing"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(t *testing.T, db *gorm.DB) CourseService {
	t.Helper()
	subjects := NewSubjectResolver(repository.NewUserRepository(db), repository.NewAdminRepository(db))
	return NewCourseService(repository.NewCourseRepository(db), repository.NewSequenceRepository(db), subjects)
}

func TestCreateCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	ctx := context.Background()

	course, err := svc.Create(ctx, dto.CourseInput{
		CourseName: "Databases",
		Category:   "core",
		Level:      "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "CID100", course.CourseID)
	assert.Equal(t, 0, course.Popularity)

	second, err := svc.Create(ctx, dto.CourseInput{
		CourseName: "Networks",
		Category:   "core",
		Level:      "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "CID101", second.CourseID)
}

func TestUpdateCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	seedCourse(t, db, "CID100", "Databases", "3")

	updated, err := svc.Update(context.Background(), "CID100", dto.CourseInput{
		CourseName: "Advanced Databases",
		Category:   "elective",
		Level:      "5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Databases", updated.CourseName)
	assert.Equal(t, "elective", updated.Category)
	assert.Equal(t, "5", updated.Level)

	var stored model.Course
	require.NoError(t, db.First(&stored, "courseid = ?", "CID100").Error)
	assert.Equal(t, "Advanced Databases", stored.CourseName)
}

func TestUpdateNonexistentCourse(t *testing.T) {
	svc := newCourseService(t, newTestDB(t))

	_, err := svc.Update(context.Background(), "CID999", dto.CourseInput{
		CourseName: "Ghost",
		Category:   "core",
		Level:      "1",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteCourseReturnsDeletedRecord(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	seedCourse(t, db, "CID100", "Databases", "3")

	deleted, err := svc.Delete(context.Background(), "CID100")
	require.NoError(t, err)
	assert.Equal(t, "Databases", deleted.CourseName)

	err = db.First(&model.Course{}, "courseid = ?", "CID100").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteNonexistentCourse(t *testing.T) {
	svc := newCourseService(t, newTestDB(t))

	_, err := svc.Delete(context.Background(), "CID999")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListCoursesWithSubjectDetails(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	seedAdmin(t, db, "ADM100", "a@x.com", "secret")
	seedCourse(t, db, "CID101", "Networks", "3")
	seedCourse(t, db, "CID100", "Databases", "3")

	res, err := svc.List(context.Background(), "ADM100", model.RoleAdmin)
	require.NoError(t, err)

	require.Len(t, res.Courses, 2)
	assert.Equal(t, "CID100", res.Courses[0].CourseID)
	assert.Equal(t, "CID101", res.Courses[1].CourseID)

	admin, ok := res.UserDetails.(*model.Admin)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", admin.Email)
}
