package agents

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

const (
	minPasswordLen   = 8
	resetTokenTTL    = time.Hour
	referralCodeLen  = 8
	referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type Service struct {
	Repo Repo

	now func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (Agent, error) {
	if s == nil || s.Repo == nil {
		return Agent{}, errors.New("agents service not configured")
	}
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return Agent{}, errors.New("a valid email is required")
	}
	if len(params.Password) < minPasswordLen {
		return Agent{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return Agent{}, fmt.Errorf("hash password: %w", err)
	}

	code, err := s.uniqueReferralCode(ctx)
	if err != nil {
		return Agent{}, err
	}

	agent := Agent{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		ReferralCode: code,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, agent); err != nil {
		return Agent{}, err
	}
	return agent, nil
}

// Login verifies credentials. Unknown email and wrong password return the
// same error so callers cannot probe for registered addresses.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (Agent, error) {
	if s == nil || s.Repo == nil {
		return Agent{}, errors.New("agents service not configured")
	}
	agent, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Agent{}, ErrInvalidCredentials
		}
		return Agent{}, err
	}
	if !agent.IsActive {
		return Agent{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)); err != nil {
		return Agent{}, ErrInvalidCredentials
	}
	return agent, nil
}

// ForgotPassword mints a single-use reset token when the email is registered.
// It returns an empty token for unknown addresses without error, so handler
// responses stay identical either way.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) (string, Agent, error) {
	if s == nil || s.Repo == nil {
		return "", Agent{}, errors.New("agents service not configured")
	}
	agent, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", Agent{}, nil
		}
		return "", Agent{}, err
	}
	if !agent.IsActive {
		return "", Agent{}, nil
	}

	token := ResetToken{
		ID:        uuid.NewString(),
		AgentID:   agent.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.Repo.CreateResetToken(ctx, token); err != nil {
		return "", Agent{}, err
	}
	return token.Token, agent, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s == nil || s.Repo == nil {
		return errors.New("agents service not configured")
	}
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	stored, err := s.Repo.GetResetToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if stored.UsedAt != nil || s.now().After(stored.ExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Repo.UpdatePassword(ctx, stored.AgentID, string(hash)); err != nil {
		return err
	}
	return s.Repo.MarkResetTokenUsed(ctx, stored.ID)
}

func (s *Service) GetByID(ctx context.Context, agentID string) (Agent, error) {
	if s == nil || s.Repo == nil {
		return Agent{}, errors.New("agents service not configured")
	}
	return s.Repo.GetByID(ctx, agentID)
}

func (s *Service) GetByReferralCode(ctx context.Context, code string) (Agent, error) {
	if s == nil || s.Repo == nil {
		return Agent{}, errors.New("agents service not configured")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Agent{}, ErrNotFound
	}
	return s.Repo.GetByReferralCode(ctx, code)
}

func (s *Service) uniqueReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := randomReferralCode()
		if err != nil {
			return "", err
		}
		_, err = s.Repo.GetByReferralCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate a unique referral code")
}

func randomReferralCode() (string, error) {
	buf := make([]byte, referralCodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	out := make([]byte, referralCodeLen)
	for i, b := range buf {
		out[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(out), nil
}
