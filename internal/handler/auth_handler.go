package handler

import (
	"net/http"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/middleware"
	"github.com/educonnect/backend/internal/service"
	"github.com/educonnect/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	otpService  service.OTPService
	subjects    service.SubjectResolver
}

func NewAuthHandler(authService service.AuthService, otpService service.OTPService, subjects service.SubjectResolver) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
		subjects:    subjects,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": res.Token, "token_type": res.TokenType, "expires_in": res.ExpiresIn})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	picture := formImage(c, "profilePic")
	user, err := h.authService.Register(c.Request.Context(), input, picture)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var input dto.SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.otpService.SendRegistrationOTP(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

func (h *AuthHandler) SendPasswordResetOTP(c *gin.Context) {
	var input dto.SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.otpService.SendPasswordResetOTP(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var input dto.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	ok, err := h.otpService.Verify(c.Request.Context(), input.Email, input.OTP, service.OTPPurpose(input.Purpose))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input dto.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been updated successfully."})
}

// UserDetails serves the appbar: the authoritative record behind the claim.
func (h *AuthHandler) UserDetails(c *gin.Context) {
	details, err := h.subjects.Resolve(c.Request.Context(), middleware.SubjectID(c), middleware.SubjectRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": details})
}

// formImage pulls an optional image file out of a multipart form. The
// returned reader stays valid until the request ends.
func formImage(c *gin.Context, field string) *dto.ImageFile {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil
	}

	return &dto.ImageFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	}
}
