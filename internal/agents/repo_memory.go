package agents

import (
	"context"
	"strings"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	agents map[string]Agent
	tokens map[string]ResetToken
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		agents: make(map[string]Agent),
		tokens: make(map[string]ResetToken),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, agent Agent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.agents {
		if strings.EqualFold(existing.Email, agent.Email) {
			return ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	agent.CreatedAt = now
	agent.UpdatedAt = now
	r.agents[agent.ID] = agent
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, agentID string) (Agent, error) {
	if err := ctx.Err(); err != nil {
		return Agent{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, ok := r.agents[agentID]
	if !ok {
		return Agent{}, ErrNotFound
	}
	return agent, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Agent, error) {
	if err := ctx.Err(); err != nil {
		return Agent{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, agent := range r.agents {
		if strings.EqualFold(agent.Email, email) {
			return agent, nil
		}
	}
	return Agent{}, ErrNotFound
}

func (r *MemoryRepo) GetByReferralCode(ctx context.Context, code string) (Agent, error) {
	if err := ctx.Err(); err != nil {
		return Agent{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, agent := range r.agents {
		if agent.ReferralCode == code {
			return agent, nil
		}
	}
	return Agent{}, ErrNotFound
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, agentID, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	agent, ok := r.agents[agentID]
	if !ok {
		return ErrNotFound
	}
	agent.PasswordHash = passwordHash
	agent.UpdatedAt = time.Now().UTC()
	r.agents[agentID] = agent
	return nil
}

func (r *MemoryRepo) CreateResetToken(ctx context.Context, token ResetToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *MemoryRepo) GetResetToken(ctx context.Context, token string) (ResetToken, error) {
	if err := ctx.Err(); err != nil {
		return ResetToken{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.tokens[token]
	if !ok {
		return ResetToken{}, ErrNotFound
	}
	return stored, nil
}

func (r *MemoryRepo) MarkResetTokenUsed(ctx context.Context, tokenID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, token := range r.tokens {
		if token.ID == tokenID {
			now := time.Now().UTC()
			token.UsedAt = &now
			r.tokens[key] = token
			return nil
		}
	}
	return ErrNotFound
}
