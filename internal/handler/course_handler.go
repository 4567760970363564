package handler

import (
	"net/http"

	"github.com/educonnect/backend/internal/dto"
	"github.com/educonnect/backend/internal/middleware"
	"github.com/educonnect/backend/internal/service"
	"github.com/educonnect/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService service.CourseService
}

func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	res, err := h.courseService.List(c.Request.Context(), middleware.SubjectID(c), middleware.SubjectRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CourseHandler) AddCourse(c *gin.Context) {
	var input dto.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) EditCourse(c *gin.Context) {
	var input dto.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), c.Param("courseid"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course successfully updated", "course": course})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	course, err := h.courseService.Delete(c.Request.Context(), c.Param("courseid"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course successfully deleted.", "deletedCourse": course})
}
