package notifications

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "notification not found" }

type Repo interface {
	Create(ctx context.Context, notification Notification) error
	ListByAgent(ctx context.Context, agentID string, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, agentID, notificationID string) error
	MarkAllRead(ctx context.Context, agentID string) (int, error)
}
