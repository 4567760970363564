package handler

import (
	"net/http"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/middleware"
	"github.com/educonnect/backend/internal/service"
	"github.com/educonnect/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

func (h *EnrollmentHandler) UnenrolledCourses(c *gin.Context) {
	res, err := h.enrollmentService.UnenrolledCourses(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var input dto.EnrollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), middleware.SubjectID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully enrolled in the course", "enrollment": enrollment})
}

func (h *EnrollmentHandler) EnrolledCourses(c *gin.Context) {
	courses, err := h.enrollmentService.EnrolledCourses(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	err := h.enrollmentService.Unenroll(c.Request.Context(), middleware.SubjectID(c), c.Param("enrollid"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unenrolled from the course."})
}
