package notifications

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, notification Notification) error {
	const query = `
INSERT INTO notifications (id, agent_id, kind, title, body, created_at)
VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.DB.ExecContext(ctx, query,
		notification.ID,
		notification.AgentID,
		notification.Kind,
		notification.Title,
		notification.Body,
	)
	return err
}

func (r *PGRepo) ListByAgent(ctx context.Context, agentID string, unreadOnly bool, limit int) ([]Notification, error) {
	query := `
SELECT id, agent_id, kind, title, body, read_at, created_at
FROM notifications
WHERE agent_id = $1`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += `
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.AgentID, &n.Kind, &n.Title, &n.Body, &readAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PGRepo) MarkRead(ctx context.Context, agentID, notificationID string) error {
	const query = `
UPDATE notifications SET read_at = now()
WHERE id = $1 AND agent_id = $2 AND read_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, notificationID, agentID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either missing or already read; distinguish so already-read stays idempotent.
		const existsQuery = `SELECT 1 FROM notifications WHERE id = $1 AND agent_id = $2`
		var one int
		if err := r.DB.QueryRowContext(ctx, existsQuery, notificationID, agentID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (r *PGRepo) MarkAllRead(ctx context.Context, agentID string) (int, error) {
	const query = `
UPDATE notifications SET read_at = now()
WHERE agent_id = $1 AND read_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, agentID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}
