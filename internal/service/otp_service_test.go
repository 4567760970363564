package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/pkg/apperror"
	"github.com/educonnect/backend/pkg/mailer"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOTPService(t *testing.T, db *gorm.DB) (OTPService, *captureMailer, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mail := newCaptureMailer()
	svc := NewOTPService(rdb, repository.NewUserRepository(db), mail, 10*time.Minute, time.Minute)
	return svc, mail, mr
}

func TestRegistrationOTPRoundtrip(t *testing.T) {
	svc, mail, _ := newOTPService(t, newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.SendRegistrationOTP(ctx, "ada@example.com"))

	otp := mail.otps["ada@example.com"]
	require.Len(t, otp, 4)

	ok, err := svc.Verify(ctx, "ada@example.com", otp, OTPPurposeRegister)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOTPVerifiesAtMostOnce(t *testing.T) {
	svc, mail, _ := newOTPService(t, newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.SendRegistrationOTP(ctx, "ada@example.com"))
	otp := mail.otps["ada@example.com"]

	ok, err := svc.Verify(ctx, "ada@example.com", otp, OTPPurposeRegister)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Verify(ctx, "ada@example.com", otp, OTPPurposeRegister)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPWrongCode(t *testing.T) {
	svc, mail, _ := newOTPService(t, newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.SendRegistrationOTP(ctx, "ada@example.com"))
	otp := mail.otps["ada@example.com"]

	ok, err := svc.Verify(ctx, "ada@example.com", "0000", OTPPurposeRegister)
	require.NoError(t, err)
	assert.False(t, ok)

	// Retrieval is atomic and single-attempt: the wrong guess consumed the
	// code, so even the right one fails now.
	ok, err = svc.Verify(ctx, "ada@example.com", otp, OTPPurposeRegister)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPPurposesAreSeparate(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, "UID100", "ada@example.com", "password1")
	svc, mail, _ := newOTPService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.SendRegistrationOTP(ctx, "ada@example.com"))
	otp := mail.otps["ada@example.com"]

	ok, err := svc.Verify(ctx, "ada@example.com", otp, OTPPurposeReset)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPExpires(t *testing.T) {
	svc, mail, mr := newOTPService(t, newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.SendRegistrationOTP(ctx, "ada@example.com"))
	otp := mail.otps["ada@example.com"]

	mr.FastForward(11 * time.Minute)

	ok, err := svc.Verify(ctx, "ada@example.com", otp, OTPPurposeRegister)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPSendRateLimited(t *testing.T) {
	svc, _, mr := newOTPService(t, newTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.SendRegistrationOTP(ctx, "ada@example.com"))

	err := svc.SendRegistrationOTP(ctx, "ada@example.com")
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)

	mr.FastForward(2 * time.Minute)
	assert.NoError(t, svc.SendRegistrationOTP(ctx, "ada@example.com"))
}

// brokenMailer fails every send.
type brokenMailer struct {
	mailer.Mailer
}

func (brokenMailer) SendRegistrationOTP(ctx context.Context, to, otp string) error {
	return errors.New("smtp is down")
}

func TestOTPFailedSendReleasesRateLock(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	broken := NewOTPService(rdb, users, brokenMailer{}, 10*time.Minute, time.Minute)
	require.Error(t, broken.SendRegistrationOTP(ctx, "ada@example.com"))

	// The failed delivery must not lock the address out of the next attempt.
	mail := newCaptureMailer()
	working := NewOTPService(rdb, users, mail, 10*time.Minute, time.Minute)
	require.NoError(t, working.SendRegistrationOTP(ctx, "ada@example.com"))
	assert.Len(t, mail.otps["ada@example.com"], 4)
}

func TestPasswordResetOTPRequiresExistingUser(t *testing.T) {
	db := newTestDB(t)
	svc, mail, _ := newOTPService(t, db)
	ctx := context.Background()

	err := svc.SendPasswordResetOTP(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	seedStudent(t, db, "UID100", "ada@example.com", "password1")
	require.NoError(t, svc.SendPasswordResetOTP(ctx, "ada@example.com"))
	assert.Len(t, mail.otps["ada@example.com"], 4)
}
