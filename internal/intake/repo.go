package intake

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "submission not found" }

type Repo interface {
	Create(ctx context.Context, submission Submission) error
	GetByID(ctx context.Context, agentID, submissionID string) (Submission, error)
	ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]Submission, error)
}
