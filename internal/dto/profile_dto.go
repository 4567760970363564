package dto

type UpdateProfileInput struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Semester string `form:"semester" binding:"required"`
}
