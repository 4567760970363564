package model

import "time"

// User is a student account. The primary key is the generated UID<n>
// identifier, the UI depends on that exact textual shape.
type User struct {
	UserID            string    `gorm:"column:userid;primaryKey;size:20" json:"userid"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Email             string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"size:255;not null" json:"-"`
	ProfilePictureURL *string   `gorm:"column:profile_picture_url;type:text" json:"profile_picture_url,omitempty"`
	Semester          string    `gorm:"size:20" json:"semester"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Admin accounts are pre-provisioned, there is no exposed flow that creates
// them. Passwords are bcrypt hashes, same as students.
type Admin struct {
	AdminID   string    `gorm:"column:adminid;primaryKey;size:20" json:"adminid"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}
