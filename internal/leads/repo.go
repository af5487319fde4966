package leads

import "context"

type Repo interface {
	Create(ctx context.Context, lead Lead) error
	ListByAgent(ctx context.Context, agentID string, limit int) ([]Lead, error)
}
