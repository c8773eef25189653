package models

import (
	"strings"
	"time"
)

type User struct {
	Base
	Email       string    `json:"email" gorm:"uniqueIndex;not null;size:254"`
	FirstName   string    `json:"first_name" gorm:"not null;size:110"`
	LastName    string    `json:"last_name" gorm:"not null;size:110"`
	Password    string    `json:"-" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	IsStaff     bool      `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser bool      `json:"is_superuser" gorm:"not null;default:false"`
	DateJoined  time.Time `json:"date_joined"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	IsStaff   bool   `json:"is_staff"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		IsStaff:   u.IsStaff,
	}
}
