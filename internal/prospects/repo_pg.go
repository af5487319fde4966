package prospects

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, prospect Prospect) (Prospect, error) {
	const query = `
INSERT INTO prospects (id, agent_id, email, phone, first_name, last_name, source, status, created_at)
VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, now())
ON CONFLICT (agent_id, email) DO UPDATE SET
  phone = CASE WHEN EXCLUDED.phone <> '' THEN EXCLUDED.phone ELSE prospects.phone END,
  first_name = CASE WHEN EXCLUDED.first_name <> '' THEN EXCLUDED.first_name ELSE prospects.first_name END,
  last_name = CASE WHEN EXCLUDED.last_name <> '' THEN EXCLUDED.last_name ELSE prospects.last_name END
RETURNING id, agent_id, email, phone, first_name, last_name, source, status, created_at`
	var out Prospect
	err := r.DB.QueryRowContext(ctx, query,
		prospect.ID,
		prospect.AgentID,
		prospect.Email,
		prospect.Phone,
		prospect.FirstName,
		prospect.LastName,
		prospect.Source,
		prospect.Status,
	).Scan(
		&out.ID,
		&out.AgentID,
		&out.Email,
		&out.Phone,
		&out.FirstName,
		&out.LastName,
		&out.Source,
		&out.Status,
		&out.CreatedAt,
	)
	if err != nil {
		return Prospect{}, err
	}
	return out, nil
}

func (r *PGRepo) UpsertBusiness(ctx context.Context, prospect BusinessProspect) (BusinessProspect, error) {
	const query = `
INSERT INTO business_prospects (id, agent_id, email, phone, contact_name, business_name, source, status, created_at)
VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, now())
ON CONFLICT (agent_id, email) DO UPDATE SET
  phone = CASE WHEN EXCLUDED.phone <> '' THEN EXCLUDED.phone ELSE business_prospects.phone END,
  contact_name = CASE WHEN EXCLUDED.contact_name <> '' THEN EXCLUDED.contact_name ELSE business_prospects.contact_name END,
  business_name = CASE WHEN EXCLUDED.business_name <> '' THEN EXCLUDED.business_name ELSE business_prospects.business_name END
RETURNING id, agent_id, email, phone, contact_name, business_name, source, status, created_at`
	var out BusinessProspect
	err := r.DB.QueryRowContext(ctx, query,
		prospect.ID,
		prospect.AgentID,
		prospect.Email,
		prospect.Phone,
		prospect.ContactName,
		prospect.BusinessName,
		prospect.Source,
		prospect.Status,
	).Scan(
		&out.ID,
		&out.AgentID,
		&out.Email,
		&out.Phone,
		&out.ContactName,
		&out.BusinessName,
		&out.Source,
		&out.Status,
		&out.CreatedAt,
	)
	if err != nil {
		return BusinessProspect{}, err
	}
	return out, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, agentID, prospectID, status string) error {
	const personalQuery = `
UPDATE prospects SET status = $3 WHERE id = $1 AND agent_id = $2`
	res, err := r.DB.ExecContext(ctx, personalQuery, prospectID, agentID, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	const businessQuery = `
UPDATE business_prospects SET status = $3 WHERE id = $1 AND agent_id = $2`
	res, err = r.DB.ExecContext(ctx, businessQuery, prospectID, agentID, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	return ErrNotFound
}

func (r *PGRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]Prospect, error) {
	const query = `
SELECT id, agent_id, email, phone, first_name, last_name, source, status, created_at
FROM prospects
WHERE agent_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Prospect, 0)
	for rows.Next() {
		var p Prospect
		if err := rows.Scan(
			&p.ID,
			&p.AgentID,
			&p.Email,
			&p.Phone,
			&p.FirstName,
			&p.LastName,
			&p.Source,
			&p.Status,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListBusinessByAgent(ctx context.Context, agentID string, limit, offset int) ([]BusinessProspect, error) {
	const query = `
SELECT id, agent_id, email, phone, contact_name, business_name, source, status, created_at
FROM business_prospects
WHERE agent_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BusinessProspect, 0)
	for rows.Next() {
		var p BusinessProspect
		if err := rows.Scan(
			&p.ID,
			&p.AgentID,
			&p.Email,
			&p.Phone,
			&p.ContactName,
			&p.BusinessName,
			&p.Source,
			&p.Status,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
