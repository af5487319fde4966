package intake

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fna-backend/internal/fna"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, submission Submission) error {
	formData, err := json.Marshal(submission.Profile)
	if err != nil {
		return fmt.Errorf("marshal form data: %w", err)
	}
	result, err := json.Marshal(submission.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	const query = `
INSERT INTO financial_profiles (id, agent_id, prospect_id, form_type, form_data, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err = r.DB.ExecContext(ctx, query,
		submission.ID,
		submission.AgentID,
		nullableString(submission.ProspectID),
		submission.FormType,
		formData,
		result,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, agentID, submissionID string) (Submission, error) {
	const query = `
SELECT id, agent_id, prospect_id, form_type, form_data, result, created_at
FROM financial_profiles
WHERE id = $1 AND agent_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, submissionID, agentID)
	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return submission, nil
}

func (r *PGRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]Submission, error) {
	const query = `
SELECT id, agent_id, prospect_id, form_type, form_data, result, created_at
FROM financial_profiles
WHERE agent_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, submission)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var submission Submission
	var prospectID sql.NullString
	var formData, result []byte

	err := row.Scan(
		&submission.ID,
		&submission.AgentID,
		&prospectID,
		&submission.FormType,
		&formData,
		&result,
		&submission.CreatedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	if prospectID.Valid {
		submission.ProspectID = prospectID.String
	}

	submission.Profile = fna.Profile{}
	if len(formData) > 0 {
		if err := json.Unmarshal(formData, &submission.Profile); err != nil {
			return Submission{}, fmt.Errorf("unmarshal form data: %w", err)
		}
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &submission.Result); err != nil {
			return Submission{}, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return submission, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
