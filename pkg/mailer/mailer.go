package mailer

import "context"

// Mailer delivers transactional mail. Failures are terminal for the request
// that triggered them, nothing is retried.
type Mailer interface {
	SendRegistrationOTP(ctx context.Context, to, otp string) error
	SendPasswordResetOTP(ctx context.Context, to, otp string) error
	SendEnrollmentConfirmation(ctx context.Context, to, name, courseName string) error
}

// Noop discards all mail. Used in tests and when no API key is configured.
type Noop struct{}

func (Noop) SendRegistrationOTP(ctx context.Context, to, otp string) error {
	return nil
}

func (Noop) SendPasswordResetOTP(ctx context.Context, to, otp string) error {
	return nil
}

func (Noop) SendEnrollmentConfirmation(ctx context.Context, to, name, courseName string) error {
	return nil
}
