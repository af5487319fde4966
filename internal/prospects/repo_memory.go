package prospects

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	personal map[string]Prospect
	business map[string]BusinessProspect
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		personal: make(map[string]Prospect),
		business: make(map[string]BusinessProspect),
	}
}

func personalKey(agentID, email string) string {
	return agentID + "|" + strings.ToLower(email)
}

func (r *MemoryRepo) Upsert(ctx context.Context, prospect Prospect) (Prospect, error) {
	if err := ctx.Err(); err != nil {
		return Prospect{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := personalKey(prospect.AgentID, prospect.Email)
	if existing, ok := r.personal[key]; ok {
		if prospect.Phone != "" {
			existing.Phone = prospect.Phone
		}
		if prospect.FirstName != "" {
			existing.FirstName = prospect.FirstName
		}
		if prospect.LastName != "" {
			existing.LastName = prospect.LastName
		}
		r.personal[key] = existing
		return existing, nil
	}

	if prospect.ID == "" {
		prospect.ID = uuid.NewString()
	}
	if prospect.Status == "" {
		prospect.Status = StatusNew
	}
	prospect.CreatedAt = time.Now().UTC()
	r.personal[key] = prospect
	return prospect, nil
}

func (r *MemoryRepo) UpsertBusiness(ctx context.Context, prospect BusinessProspect) (BusinessProspect, error) {
	if err := ctx.Err(); err != nil {
		return BusinessProspect{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := personalKey(prospect.AgentID, prospect.Email)
	if existing, ok := r.business[key]; ok {
		if prospect.Phone != "" {
			existing.Phone = prospect.Phone
		}
		if prospect.ContactName != "" {
			existing.ContactName = prospect.ContactName
		}
		if prospect.BusinessName != "" {
			existing.BusinessName = prospect.BusinessName
		}
		r.business[key] = existing
		return existing, nil
	}

	if prospect.ID == "" {
		prospect.ID = uuid.NewString()
	}
	if prospect.Status == "" {
		prospect.Status = StatusNew
	}
	prospect.CreatedAt = time.Now().UTC()
	r.business[key] = prospect
	return prospect, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, agentID, prospectID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.personal {
		if p.ID == prospectID && p.AgentID == agentID {
			p.Status = status
			r.personal[key] = p
			return nil
		}
	}
	for key, p := range r.business {
		if p.ID == prospectID && p.AgentID == agentID {
			p.Status = status
			r.business[key] = p
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]Prospect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Prospect, 0)
	for _, p := range r.personal {
		if p.AgentID == agentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return pagePersonal(out, limit, offset), nil
}

func (r *MemoryRepo) ListBusinessByAgent(ctx context.Context, agentID string, limit, offset int) ([]BusinessProspect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]BusinessProspect, 0)
	for _, p := range r.business {
		if p.AgentID == agentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return pageBusiness(out, limit, offset), nil
}

func pagePersonal(items []Prospect, limit, offset int) []Prospect {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []Prospect{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func pageBusiness(items []BusinessProspect, limit, offset int) []BusinessProspect {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []BusinessProspect{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
