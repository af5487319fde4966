package agents

import (
	"context"
	"testing"
	"time"
)

func TestRegisterHashesPasswordAndAssignsCode(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	agent, err := svc.Register(ctx, RegisterParams{
		Email:     " Pat@Example.com ",
		Password:  "correct horse",
		FirstName: "Pat",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if agent.Email != "pat@example.com" {
		t.Fatalf("expected normalized email, got %q", agent.Email)
	}
	if agent.PasswordHash == "correct horse" || agent.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if len(agent.ReferralCode) != referralCodeLen {
		t.Fatalf("expected %d-char referral code, got %q", referralCodeLen, agent.ReferralCode)
	}
	if !agent.IsActive {
		t.Fatalf("new agents must be active")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	params := RegisterParams{Email: "pat@example.com", Password: "correct horse"}
	if _, err := svc.Register(ctx, params); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, params); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), RegisterParams{Email: "a@b.c", Password: "short"}); err != ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{Email: "pat@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	agent, err := svc.Login(ctx, "PAT@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if agent.ID != registered.ID {
		t.Fatalf("expected the registered agent back")
	}

	if _, err := svc.Login(ctx, "pat@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "correct horse"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{Email: "pat@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, agent, err := svc.ForgotPassword(ctx, "pat@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if token == "" || agent.ID != registered.ID {
		t.Fatalf("expected a token for a known email")
	}

	if err := svc.ResetPassword(ctx, token, "brand new password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Login(ctx, "pat@example.com", "brand new password"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "pat@example.com", "correct horse"); err != ErrInvalidCredentials {
		t.Fatalf("old password must stop working, got %v", err)
	}

	// Tokens are single use.
	if err := svc.ResetPassword(ctx, token, "yet another password"); err != ErrInvalidResetToken {
		t.Fatalf("expected ErrInvalidResetToken on reuse, got %v", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	token, _, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword must not error for unknown email: %v", err)
	}
	if token != "" {
		t.Fatalf("no token should be minted for unknown email")
	}
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{Email: "pat@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, _, err := svc.ForgotPassword(ctx, "pat@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
	if err := svc.ResetPassword(ctx, token, "brand new password"); err != ErrInvalidResetToken {
		t.Fatalf("expected ErrInvalidResetToken for expired token, got %v", err)
	}
}

func TestReferralCodeAlphabet(t *testing.T) {
	code, err := randomReferralCode()
	if err != nil {
		t.Fatalf("randomReferralCode: %v", err)
	}
	for _, ch := range code {
		found := false
		for _, allowed := range referralAlphabet {
			if ch == allowed {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("character %q outside referral alphabet", ch)
		}
	}
}
