package notifications

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Notification
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Notification)}
}

func (r *MemoryRepo) Create(ctx context.Context, notification Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	r.items[notification.ID] = notification
	return nil
}

func (r *MemoryRepo) ListByAgent(ctx context.Context, agentID string, unreadOnly bool, limit int) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Notification, 0)
	for _, n := range r.items {
		if n.AgentID != agentID {
			continue
		}
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) MarkRead(ctx context.Context, agentID, notificationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[notificationID]
	if !ok || n.AgentID != agentID {
		return ErrNotFound
	}
	if n.ReadAt == nil {
		now := time.Now().UTC()
		n.ReadAt = &now
		r.items[notificationID] = n
	}
	return nil
}

func (r *MemoryRepo) MarkAllRead(ctx context.Context, agentID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	now := time.Now().UTC()
	for id, n := range r.items {
		if n.AgentID == agentID && n.ReadAt == nil {
			n.ReadAt = &now
			r.items[id] = n
			count++
		}
	}
	return count, nil
}
