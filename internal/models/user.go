package models

import (
	"time"
)

// User represents a lawyer account in the system
type User struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	OABNumber      string    `json:"oab_number" db:"oab_number"`
	HashedPassword string    `json:"-" db:"hashed_password"` // Never expose in JSON
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// UserInfo represents safe user information (without sensitive data)
type UserInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	OABNumber string    `json:"oab_number"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserInfo converts User to UserInfo (safe for API responses)
func (u *User) ToUserInfo() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		OABNumber: u.OABNumber,
		CreatedAt: u.CreatedAt,
	}
}
