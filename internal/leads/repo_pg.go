package leads

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, lead Lead) error {
	const query = `
INSERT INTO leads (id, agent_id, prospect_id, email, phone, first_name, last_name, referral_code, source, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		nullableString(lead.AgentID),
		nullableString(lead.ProspectID),
		lead.Email,
		lead.Phone,
		lead.FirstName,
		lead.LastName,
		lead.ReferralCode,
		lead.Source,
	)
	return err
}

func (r *PGRepo) ListByAgent(ctx context.Context, agentID string, limit int) ([]Lead, error) {
	const query = `
SELECT id, agent_id, prospect_id, email, phone, first_name, last_name, referral_code, source, created_at
FROM leads
WHERE agent_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		var agent, prospect sql.NullString
		if err := rows.Scan(
			&lead.ID,
			&agent,
			&prospect,
			&lead.Email,
			&lead.Phone,
			&lead.FirstName,
			&lead.LastName,
			&lead.ReferralCode,
			&lead.Source,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		if agent.Valid {
			lead.AgentID = agent.String
		}
		if prospect.Valid {
			lead.ProspectID = prospect.String
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
