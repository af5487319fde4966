package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// NotifyReferral records an in-app notification that a referral was captured.
func (s *Service) NotifyReferral(ctx context.Context, agentID, referralName string) error {
	if s == nil || s.Repo == nil {
		return errors.New("notifications service not configured")
	}
	return s.Repo.Create(ctx, Notification{
		ID:      uuid.NewString(),
		AgentID: agentID,
		Kind:    KindReferralReceived,
		Title:   fmt.Sprintf("New referral: %s", referralName),
		Body:    fmt.Sprintf("%s was referred from a balance sheet submission.", referralName),
	})
}

// NotifyLead records an in-app notification that a public lead came in.
func (s *Service) NotifyLead(ctx context.Context, agentID, leadName string) error {
	if s == nil || s.Repo == nil {
		return errors.New("notifications service not configured")
	}
	name := strings.TrimSpace(leadName)
	if name == "" {
		name = "A new lead"
	}
	return s.Repo.Create(ctx, Notification{
		ID:      uuid.NewString(),
		AgentID: agentID,
		Kind:    KindLeadCaptured,
		Title:   fmt.Sprintf("New lead: %s", name),
		Body:    fmt.Sprintf("%s submitted the public balance sheet form.", name),
	})
}

func (s *Service) List(ctx context.Context, agentID string, unreadOnly bool, limit int) ([]Notification, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("notifications service not configured")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.Repo.ListByAgent(ctx, agentID, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, agentID, notificationID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("notifications service not configured")
	}
	if strings.TrimSpace(notificationID) == "" {
		return ErrNotFound
	}
	return s.Repo.MarkRead(ctx, agentID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, agentID string) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, errors.New("notifications service not configured")
	}
	return s.Repo.MarkAllRead(ctx, agentID)
}
