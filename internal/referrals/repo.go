package referrals

import "context"

type Repo interface {
	Create(ctx context.Context, referral Referral) error
	ListByAgent(ctx context.Context, agentID string, limit int) ([]Referral, error)
}
