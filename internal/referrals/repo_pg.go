package referrals

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, referral Referral) error {
	const query = `
INSERT INTO referrals (id, agent_id, submission_id, name, email, phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.DB.ExecContext(ctx, query,
		referral.ID,
		referral.AgentID,
		nullableString(referral.SubmissionID),
		referral.Name,
		referral.Email,
		referral.Phone,
	)
	return err
}

func (r *PGRepo) ListByAgent(ctx context.Context, agentID string, limit int) ([]Referral, error) {
	const query = `
SELECT id, agent_id, submission_id, name, email, phone, created_at
FROM referrals
WHERE agent_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Referral, 0)
	for rows.Next() {
		var ref Referral
		var submissionID sql.NullString
		if err := rows.Scan(&ref.ID, &ref.AgentID, &submissionID, &ref.Name, &ref.Email, &ref.Phone, &ref.CreatedAt); err != nil {
			return nil, err
		}
		if submissionID.Valid {
			ref.SubmissionID = submissionID.String
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
