package dto

type EnrollInput struct {
	CourseID string `json:"courseId" binding:"required"`
}

type EnrolledCourseResponse struct {
	EnrollID   string `json:"enrollid"`
	CourseID   string `json:"courseid"`
	CourseName string `json:"coursename"`
	Category   string `json:"category"`
	Level      string `json:"level"`
}
