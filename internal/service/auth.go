package service

import (
	"context"
	"errors"
	"time"

	"github.com/dinoai/dinoai-go/internal/crypto"
	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/repository"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrLanguagesRequired  = errors.New("learningLanguage and nativeLanguage are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore is the user persistence surface the services need.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// AuthService handles registration, login and self-service profile
// operations.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns a token plus profile.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	switch {
	case req.Username == "":
		return model.AuthResponse{}, ErrUsernameRequired
	case req.Email == "":
		return model.AuthResponse{}, ErrEmailRequired
	case req.Password == "":
		return model.AuthResponse{}, ErrPasswordRequired
	case req.LearningLanguage == "" || req.NativeLanguage == "":
		return model.AuthResponse{}, ErrLanguagesRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:         req.Username,
		Email:            req.Email,
		PasswordHash:     hash,
		LearningLanguage: req.LearningLanguage,
		NativeLanguage:   req.NativeLanguage,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthResponse{}, translateUserErr(err)
	}

	token, err := crypto.GenerateToken(user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: user.ToResponse()}, nil
}

// Login verifies credentials, records the authentication time, and issues
// a fresh token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return model.AuthResponse{}, err
	}
	now := time.Now().UTC()
	user.LastLogin = &now

	token, err := crypto.GenerateToken(user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: user.ToResponse()}, nil
}

// GetProfile returns the profile of the token subject.
func (s *AuthService) GetProfile(ctx context.Context, username string) (model.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return model.UserResponse{}, translateUserErr(err)
	}
	return user.ToResponse(), nil
}

// UpdateProfile applies a partial self-update to the token subject's
// account. Only the caller's own record is ever touched.
func (s *AuthService) UpdateProfile(ctx context.Context, username string, req model.UpdateUserRequest) (model.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return model.UserResponse{}, translateUserErr(err)
	}

	if req.Username != nil && *req.Username != "" {
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != "" {
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}
	if req.LearningLanguage != nil && *req.LearningLanguage != "" {
		user.LearningLanguage = *req.LearningLanguage
	}
	if req.NativeLanguage != nil && *req.NativeLanguage != "" {
		user.NativeLanguage = *req.NativeLanguage
	}

	if err := s.users.Update(ctx, user); err != nil {
		return model.UserResponse{}, translateUserErr(err)
	}

	return user.ToResponse(), nil
}

// DeleteAccount removes the token subject's account.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return translateUserErr(err)
	}
	return translateUserErr(s.users.Delete(ctx, user.ID))
}

func translateUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameTaken
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	default:
		return err
	}
}
