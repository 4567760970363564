package model

import "time"

type Course struct {
	CourseID   string    `gorm:"column:courseid;primaryKey;size:20" json:"courseid"`
	CourseName string    `gorm:"column:coursename;size:100;not null" json:"coursename"`
	Category   string    `gorm:"size:50;not null" json:"category"`
	Level      string    `gorm:"size:20;not null" json:"level"`
	Popularity int       `gorm:"not null;default:0" json:"popularity"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment links one user to one course. The (userid, courseid) pair is
// unique: a student cannot enroll twice in the same course.
type Enrollment struct {
	EnrollID       string    `gorm:"column:enrollid;primaryKey;size:20" json:"enrollid"`
	UserID         string    `gorm:"column:userid;size:20;not null;uniqueIndex:idx_enrollments_user_course" json:"userid"`
	CourseID       string    `gorm:"column:courseid;size:20;not null;uniqueIndex:idx_enrollments_user_course" json:"courseid"`
	EnrollmentDate time.Time `gorm:"column:enrollment_date;autoCreateTime" json:"enrollment_date"`

	User   User   `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID;references:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Enrollment) TableName() string {
	return "course_enrollments"
}
