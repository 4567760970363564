package dto

import "github.com/educonnect/backend/internal/model"

type CourseInput struct {
	CourseName string `json:"coursename" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Level      string `json:"level" binding:"required"`
}

// CourseListResponse mirrors what the UI expects: the course rows plus the
// resolved details of the requesting subject.
type CourseListResponse struct {
	Courses     []*model.Course `json:"courses"`
	UserDetails interface{}     `json:"userDetails"`
}
