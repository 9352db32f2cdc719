package models

import "time"

// User represents an application user stored in the users table.
// Photo holds the profile picture as a base64 encoded string.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	SocialName   string     `db:"social_name" json:"social_name,omitempty"`
	CPF          string     `db:"cpf" json:"cpf,omitempty"`
	Nationality  string     `db:"nationality" json:"nationality,omitempty"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone,omitempty"`
	Sex          string     `db:"sex" json:"sex,omitempty"`
	Color        string     `db:"color" json:"color,omitempty"`
	Photo        string     `db:"photo" json:"photo,omitempty"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// UserProfile is the public subset of a user record.
type UserProfile struct {
	Username string `json:"username"`
	Photo    string `json:"photo,omitempty"`
}

// SignupRequest creates a new account.
type SignupRequest struct {
	Username    string `json:"username" validate:"required"`
	SocialName  string `json:"social_name"`
	CPF         string `json:"cpf"`
	Nationality string `json:"nationality"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Sex         string `json:"sex"`
	Color       string `json:"color"`
	Photo       string `json:"photo"`
	Password    string `json:"password" validate:"required,min=6"`
}

// UpdateProfileRequest updates mutable profile fields; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	SocialName  *string `json:"social_name"`
	Nationality *string `json:"nationality"`
	Phone       *string `json:"phone"`
	Sex         *string `json:"sex"`
	Color       *string `json:"color"`
	Photo       *string `json:"photo"`
}
