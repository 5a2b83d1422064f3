package auth

import "time"

// User is the credential record. HashedPassword never leaves the package in
// API responses; handlers return Summary instead.
type User struct {
	ID             string    `dynamodbav:"id" json:"id"`
	Email          string    `dynamodbav:"email" json:"email"`
	FullName       string    `dynamodbav:"full_name" json:"full_name"`
	HashedPassword string    `dynamodbav:"hashed_password" json:"-"`
	IsActive       bool      `dynamodbav:"is_active" json:"is_active"`
	CreatedAt      time.Time `dynamodbav:"created_at" json:"created_at"`
}

// Summary is the safe-to-return projection of a user record.
type Summary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
