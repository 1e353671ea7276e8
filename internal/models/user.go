package models

import (
	"gorm.io/gorm"
)

// User is an account that owns interviews and their feedback.
type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// Profile is the public view of a user returned by the auth endpoints.
func (u *User) Profile() map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}
