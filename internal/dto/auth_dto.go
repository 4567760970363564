package dto

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// RegisterInput arrives as multipart form data so it can carry the optional
// profile picture alongside the fields.
type RegisterInput struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
	Semester string `form:"semester" binding:"required"`
}

type SendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPInput struct {
	Email   string `json:"email" binding:"required,email"`
	OTP     string `json:"otp" binding:"required,len=4"`
	Purpose string `json:"purpose" binding:"required,oneof=register reset"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
