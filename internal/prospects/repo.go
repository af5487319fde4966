package prospects

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "prospect not found" }

type Repo interface {
	Upsert(ctx context.Context, prospect Prospect) (Prospect, error)
	UpsertBusiness(ctx context.Context, prospect BusinessProspect) (BusinessProspect, error)
	UpdateStatus(ctx context.Context, agentID, prospectID, status string) error
	ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]Prospect, error)
	ListBusinessByAgent(ctx context.Context, agentID string, limit, offset int) ([]BusinessProspect, error)
}
