package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/pkg/apperror"
	"github.com/educonnect/backend/pkg/mailer"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// OTPPurpose separates the registration and password-reset OTP namespaces so
// a code requested for one flow cannot be replayed in the other.
type OTPPurpose string

const (
	OTPPurposeRegister OTPPurpose = "register"
	OTPPurposeReset    OTPPurpose = "reset"
)

type OTPService interface {
	// SendRegistrationOTP emails a code for account verification.
	SendRegistrationOTP(ctx context.Context, email string) error
	// SendPasswordResetOTP emails a code for password reset. The email must
	// belong to an existing user.
	SendPasswordResetOTP(ctx context.Context, email string) error
	// Verify consumes the stored code. A code verifies at most once and is
	// good for a single attempt.
	Verify(ctx context.Context, email, otp string, purpose OTPPurpose) (bool, error)
}

type otpService struct {
	rdb          *redis.Client
	users        repository.UserRepository
	mail         mailer.Mailer
	ttl          time.Duration
	sendInterval time.Duration
}

func NewOTPService(rdb *redis.Client, users repository.UserRepository, mail mailer.Mailer, ttl, sendInterval time.Duration) OTPService {
	return &otpService{
		rdb:          rdb,
		users:        users,
		mail:         mail,
		ttl:          ttl,
		sendInterval: sendInterval,
	}
}

func otpKey(purpose OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func otpRateKey(purpose OTPPurpose, email string) string {
	return fmt.Sprintf("otp_rate:%s:%s", purpose, email)
}

// generateOTP returns a 4-digit code in [1000, 9999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

func (s *otpService) issue(ctx context.Context, email string, purpose OTPPurpose) (string, error) {
	wasSet, err := s.rdb.SetNX(ctx, otpRateKey(purpose, email), "locked", s.sendInterval).Result()
	if err != nil {
		return "", fmt.Errorf("failed to check otp rate limit in redis: %w", err)
	}
	if !wasSet {
		return "", apperror.ErrRateLimitExceeded
	}

	otp, err := generateOTP()
	if err != nil {
		s.releaseRateLock(ctx, email, purpose)
		return "", err
	}

	if err := s.rdb.Set(ctx, otpKey(purpose, email), otp, s.ttl).Err(); err != nil {
		s.releaseRateLock(ctx, email, purpose)
		return "", fmt.Errorf("failed to store otp in redis: %w", err)
	}

	return otp, nil
}

// releaseRateLock frees the per-address send interval after a failed issue or
// delivery, so the address is not locked out with no code on the way.
func (s *otpService) releaseRateLock(ctx context.Context, email string, purpose OTPPurpose) {
	if err := s.rdb.Del(ctx, otpRateKey(purpose, email)).Err(); err != nil {
		log.Printf("failed to release otp rate lock for %s: %v", email, err)
	}
}

func (s *otpService) SendRegistrationOTP(ctx context.Context, email string) error {
	otp, err := s.issue(ctx, email, OTPPurposeRegister)
	if err != nil {
		return err
	}
	if err := s.mail.SendRegistrationOTP(ctx, email, otp); err != nil {
		s.releaseRateLock(ctx, email, OTPPurposeRegister)
		return err
	}
	return nil
}

func (s *otpService) SendPasswordResetOTP(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	otp, err := s.issue(ctx, email, OTPPurposeReset)
	if err != nil {
		return err
	}
	if err := s.mail.SendPasswordResetOTP(ctx, email, otp); err != nil {
		s.releaseRateLock(ctx, email, OTPPurposeReset)
		return err
	}
	return nil
}

func (s *otpService) Verify(ctx context.Context, email, otp string, purpose OTPPurpose) (bool, error) {
	// GETDEL retrieves and consumes atomically: two concurrent verifies can
	// never both see the code, so it verifies at most once. Each code is good
	// for a single attempt, a wrong guess burns it.
	stored, err := s.rdb.GetDel(ctx, otpKey(purpose, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume otp in redis: %w", err)
	}

	return stored == otp, nil
}
