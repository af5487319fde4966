package intake

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Submission
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Submission)}
}

func (r *MemoryRepo) Create(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	r.items[submission.ID] = submission
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, agentID, submissionID string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	submission, ok := r.items[submissionID]
	if !ok || submission.AgentID != agentID {
		return Submission{}, ErrNotFound
	}
	return submission, nil
}

func (r *MemoryRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Submission, 0)
	for _, s := range r.items {
		if s.AgentID == agentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []Submission{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
