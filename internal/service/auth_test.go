package service

import (
	"context"
	"testing"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
)

func newTestAuthService(users UserStore) *AuthService {
	return NewAuthService(users, "test-secret", time.Hour)
}

func validSignup() model.SignupRequest {
	return model.SignupRequest{
		Username:         "maria",
		Email:            "maria@example.com",
		Password:         "password123",
		LearningLanguage: "Spanish",
		NativeLanguage:   "English",
	}
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	req := validSignup()
	req.Username = ""
	_, err := svc.Register(context.Background(), req)

	if err != ErrUsernameRequired {
		t.Errorf("expected ErrUsernameRequired, got %v", err)
	}
}

func TestRegister_EmptyEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	req := validSignup()
	req.Email = ""
	_, err := svc.Register(context.Background(), req)

	if err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	req := validSignup()
	req.Password = ""
	_, err := svc.Register(context.Background(), req)

	if err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestRegister_MissingLanguages(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	req := validSignup()
	req.LearningLanguage = ""
	_, err := svc.Register(context.Background(), req)

	if err != ErrLanguagesRequired {
		t.Errorf("expected ErrLanguagesRequired, got %v", err)
	}
}

func TestRegister_Success(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	resp, err := svc.Register(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.User.ID == 0 {
		t.Error("expected an assigned user ID")
	}
	if resp.User.Username != "maria" {
		t.Errorf("expected username maria, got %q", resp.User.Username)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	req := validSignup()
	req.Email = "other@example.com"
	_, err := svc.Register(context.Background(), req)

	if err != ErrUsernameTaken {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	req := validSignup()
	req.Username = "other"
	_, err := svc.Register(context.Background(), req)

	if err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "maria@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.User.LastLogin == nil {
		t.Error("expected lastLogin to be set after login")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})

	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	lang := "French"
	resp, err := svc.UpdateProfile(context.Background(), "maria", model.UpdateUserRequest{
		LearningLanguage: &lang,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if resp.LearningLanguage != "French" {
		t.Errorf("expected learning language French, got %q", resp.LearningLanguage)
	}
	if resp.Email != "maria@example.com" {
		t.Errorf("expected email unchanged, got %q", resp.Email)
	}
}

func TestUpdateProfile_PasswordRehash(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	newPassword := "betterpassword456"
	if _, err := svc.UpdateProfile(context.Background(), "maria", model.UpdateUserRequest{
		Password: &newPassword,
	}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "maria@example.com",
		Password: "betterpassword456",
	}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "maria@example.com",
		Password: "password123",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("expected old password to be rejected, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), "maria"); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	_, err := svc.GetProfile(context.Background(), "maria")
	if err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound after deletion, got %v", err)
	}
}

func TestDeleteAccount_RemovesOwnedData(t *testing.T) {
	users := newFakeUserStore()
	messages := newFakeMessageStore()
	sessions := newFakeSessionStore(messages)
	vocab := newFakeVocabularyStore()
	users.sessions = sessions
	users.vocab = vocab
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	ownerID := resp.User.ID

	session, err := NewSessionService(users, sessions).Start(
		context.Background(), "maria", ownerID, "Spanish", "ordering food")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	messages.owners[session.ID] = ownerID
	if _, err := NewMessageService(users, sessions, messages).Append(
		context.Background(), "maria", model.CreateMessageRequest{
			SessionID:  session.ID,
			SenderType: model.SenderUser,
			Content:    "hola",
		}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := vocab.Upsert(context.Background(), ownerID, "2026-08-29", []byte(`{"vocabulary":[{"word":"hola","definition":"hello"}]}`)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), "maria"); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if len(sessions.sessions) != 0 {
		t.Errorf("expected sessions removed with the account, %d remain", len(sessions.sessions))
	}
	if len(messages.msgs) != 0 {
		t.Errorf("expected messages removed with the account, %d remain", len(messages.msgs))
	}
	if len(vocab.sets) != 0 {
		t.Errorf("expected vocabulary sets removed with the account, %d remain", len(vocab.sets))
	}
}
