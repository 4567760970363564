package handler

import (
	"net/http"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/middleware"
	"github.com/educonnect/backend/internal/service"
	"github.com/educonnect/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var input dto.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	picture := formImage(c, "image")
	user, err := h.profileService.UpdateProfile(c.Request.Context(), middleware.SubjectID(c), input, picture)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}
