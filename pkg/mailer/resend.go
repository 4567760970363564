package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

const registrationOTPTemplate = `<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; padding: 20px;">
<div style="max-width: 600px; margin: auto; background: #fff; padding: 20px; border-radius: 8px;">
  <h1 style="color: #0056b3;">EduConnect Account Verification</h1>
  <p>Dear user,</p>
  <p>Thank you for registering with EduConnect. To complete your registration, please use the following One-Time Password (OTP):</p>
  <p style="font-size: 24px; font-weight: bold;">%s</p>
  <p>This OTP is valid for 10 minutes and is for one-time use only.</p>
  <p>If you did not initiate this request, please ignore this email or contact support if you have concerns.</p>
  <p>Best Regards,<br>EduConnect Team</p>
</div>
</body>
</html>`

const passwordResetOTPTemplate = `<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; padding: 20px;">
<div style="max-width: 600px; margin: auto; background: #fff; padding: 20px; border-radius: 8px;">
  <h1 style="color: #0056b3;">Password Reset Request</h1>
  <p>Hello,</p>
  <p>We received a request to reset the password for your account associated with %s. Please use the following One-Time Password (OTP) to proceed:</p>
  <p style="font-size: 24px; font-weight: bold;">%s</p>
  <p>This OTP is valid for 10 minutes and can only be used once.</p>
  <p>If you did not request a password reset, no further action is required on your part.</p>
  <p>Regards,<br>EduConnect Team</p>
</div>
</body>
</html>`

const enrollmentTemplate = `<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; padding: 20px;">
<div style="max-width: 600px; margin: auto; background: #fff; padding: 20px; border-radius: 8px;">
  <h1 style="color: #0056b3;">Course Registration Successful</h1>
  <p>Dear %s,</p>
  <p>Congratulations! You have successfully registered for the course "%s" on EduConnect.</p>
  <p>We wish you an enriching learning experience. Should you have any questions or require assistance, please do not hesitate to contact us.</p>
  <p>Best Regards,<br>EduConnect Team</p>
</div>
</body>
</html>`

type resendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a Resend-backed Mailer sending from the given
// address.
func NewResendMailer(apiKey, from string) Mailer {
	return &resendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *resendMailer) send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *resendMailer) SendRegistrationOTP(ctx context.Context, to, otp string) error {
	return m.send(ctx, to,
		"Your OTP for EduConnect Registration",
		fmt.Sprintf(registrationOTPTemplate, otp),
	)
}

func (m *resendMailer) SendPasswordResetOTP(ctx context.Context, to, otp string) error {
	return m.send(ctx, to,
		"Reset Your Password for EduConnect",
		fmt.Sprintf(passwordResetOTPTemplate, to, otp),
	)
}

func (m *resendMailer) SendEnrollmentConfirmation(ctx context.Context, to, name, courseName string) error {
	return m.send(ctx, to,
		"Course Registration Confirmation - EduConnect",
		fmt.Sprintf(enrollmentTemplate, name, courseName),
	)
}
