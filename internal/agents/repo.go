package agents

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "agent not found" }

var ErrEmailTaken = errEmailTaken{}

type errEmailTaken struct{}

func (errEmailTaken) Error() string { return "email already registered" }

type Repo interface {
	Create(ctx context.Context, agent Agent) error
	GetByID(ctx context.Context, agentID string) (Agent, error)
	GetByEmail(ctx context.Context, email string) (Agent, error)
	GetByReferralCode(ctx context.Context, code string) (Agent, error)
	UpdatePassword(ctx context.Context, agentID, passwordHash string) error

	CreateResetToken(ctx context.Context, token ResetToken) error
	GetResetToken(ctx context.Context, token string) (ResetToken, error)
	MarkResetTokenUsed(ctx context.Context, tokenID string) error
}
