package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent    UserRole = "Student"
	RoleInstructor UserRole = "Instructor"
)

// User is a read model of the identity provider's account data. The
// course service never creates or updates users; Casdoor owns them.
type User struct {
	ID    string   `json:"userId" gorm:"primaryKey;size:36"`
	Name  string   `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Role  UserRole `json:"role" gorm:"not null;size:20;index" validate:"required,user_role"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
