package service

import (
	"context"
	"testing"

	"github.com/educonnect/backend/internal/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Course{},
		&model.Enrollment{},
		&model.Sequence{},
	))
	return db
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func seedStudent(t *testing.T, db *gorm.DB, id, email, password string) *model.User {
	t.Helper()
	user := &model.User{
		UserID:   id,
		Name:     "Student " + id,
		Email:    email,
		Password: mustHash(t, password),
		Semester: "3",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB, id, email, password string) *model.Admin {
	t.Helper()
	admin := &model.Admin{
		AdminID:  id,
		Name:     "Admin " + id,
		Email:    email,
		Password: mustHash(t, password),
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func seedCourse(t *testing.T, db *gorm.DB, id, name, level string) *model.Course {
	t.Helper()
	course := &model.Course{
		CourseID:   id,
		CourseName: name,
		Category:   "general",
		Level:      level,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

// captureMailer records outgoing mail instead of sending it.
type captureMailer struct {
	otps          map[string]string
	confirmations []string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{otps: map[string]string{}}
}

func (m *captureMailer) SendRegistrationOTP(ctx context.Context, to, otp string) error {
	m.otps[to] = otp
	return nil
}

func (m *captureMailer) SendPasswordResetOTP(ctx context.Context, to, otp string) error {
	m.otps[to] = otp
	return nil
}

func (m *captureMailer) SendEnrollmentConfirmation(ctx context.Context, to, name, courseName string) error {
	m.confirmations = append(m.confirmations, to+":"+courseName)
	return nil
}
