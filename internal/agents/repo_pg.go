package agents

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

const agentColumns = `id, email, password_hash, first_name, last_name, referral_code, is_active, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, agent Agent) error {
	const query = `
INSERT INTO agents (id, email, password_hash, first_name, last_name, referral_code, is_active, created_at, updated_at)
VALUES ($1, lower($2), $3, $4, $5, $6, $7, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		agent.ID,
		agent.Email,
		agent.PasswordHash,
		agent.FirstName,
		agent.LastName,
		agent.ReferralCode,
		agent.IsActive,
	)
	if err != nil && strings.Contains(err.Error(), "agents_email_key") {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, agentID string) (Agent, error) {
	const query = `SELECT ` + agentColumns + ` FROM agents WHERE id = $1 LIMIT 1`
	return r.scanAgent(r.DB.QueryRowContext(ctx, query, agentID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Agent, error) {
	const query = `SELECT ` + agentColumns + ` FROM agents WHERE email = lower($1) LIMIT 1`
	return r.scanAgent(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) GetByReferralCode(ctx context.Context, code string) (Agent, error) {
	const query = `SELECT ` + agentColumns + ` FROM agents WHERE referral_code = $1 LIMIT 1`
	return r.scanAgent(r.DB.QueryRowContext(ctx, query, code))
}

func (r *PGRepo) UpdatePassword(ctx context.Context, agentID, passwordHash string) error {
	const query = `UPDATE agents SET password_hash = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, agentID, passwordHash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CreateResetToken(ctx context.Context, token ResetToken) error {
	const query = `
INSERT INTO password_reset_tokens (id, agent_id, token, expires_at, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.DB.ExecContext(ctx, query, token.ID, token.AgentID, token.Token, token.ExpiresAt)
	return err
}

func (r *PGRepo) GetResetToken(ctx context.Context, token string) (ResetToken, error) {
	const query = `
SELECT id, agent_id, token, expires_at, used_at, created_at
FROM password_reset_tokens
WHERE token = $1
LIMIT 1`
	var out ResetToken
	var usedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, token).Scan(
		&out.ID,
		&out.AgentID,
		&out.Token,
		&out.ExpiresAt,
		&usedAt,
		&out.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResetToken{}, ErrNotFound
		}
		return ResetToken{}, err
	}
	if usedAt.Valid {
		t := usedAt.Time
		out.UsedAt = &t
	}
	return out, nil
}

func (r *PGRepo) MarkResetTokenUsed(ctx context.Context, tokenID string) error {
	const query = `UPDATE password_reset_tokens SET used_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, tokenID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanAgent(row *sql.Row) (Agent, error) {
	var agent Agent
	err := row.Scan(
		&agent.ID,
		&agent.Email,
		&agent.PasswordHash,
		&agent.FirstName,
		&agent.LastName,
		&agent.ReferralCode,
		&agent.IsActive,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Agent{}, ErrNotFound
		}
		return Agent{}, err
	}
	return agent, nil
}
