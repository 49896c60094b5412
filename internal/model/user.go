package model

import "time"

// User represents a registered learner in the database.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string
	LearningLanguage string
	NativeLanguage   string
	CreatedAt        time.Time
	LastLogin        *time.Time
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	LearningLanguage string `json:"learningLanguage"`
	NativeLanguage   string `json:"nativeLanguage"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents a partial self-service profile update.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username         *string `json:"username"`
	Email            *string `json:"email"`
	Password         *string `json:"password"`
	LearningLanguage *string `json:"learningLanguage"`
	NativeLanguage   *string `json:"nativeLanguage"`
}

// AuthResponse represents an authentication response with a JWT token and profile.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no hash).
type UserResponse struct {
	ID               int64      `json:"userId"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	LearningLanguage string     `json:"learningLanguage"`
	NativeLanguage   string     `json:"nativeLanguage"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
}

// ToResponse strips a User down to its API representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		LearningLanguage: u.LearningLanguage,
		NativeLanguage:   u.NativeLanguage,
		CreatedAt:        u.CreatedAt,
		LastLogin:        u.LastLogin,
	}
}
