package referrals

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fna-backend/internal/prospects"
	"fna-backend/internal/shared/email"
	"fna-backend/internal/shared/metrics"
	"fna-backend/internal/shared/telemetry"
)

type Service struct {
	Repo      Repo
	Prospects *prospects.Service
	Notify    notifier
	Mail      email.Sender
}

// notifier is the slice of the notifications service the fan-out needs.
type notifier interface {
	NotifyReferral(ctx context.Context, agentID, referralName string) error
}

func NewService(repo Repo, prospectsSvc *prospects.Service, notify notifier, mail email.Sender) *Service {
	return &Service{Repo: repo, Prospects: prospectsSvc, Notify: notify, Mail: mail}
}

// FanOutParams carries the referral slots of one submission plus the owning
// agent's identity for notification delivery.
type FanOutParams struct {
	AgentID      string
	AgentName    string
	AgentEmail   string
	SubmissionID string
	Entries      []Entry
}

// FanOut persists the extracted referrals, registers each as a prospect, and
// notifies the agent in-app and by email. Individual failures are logged and
// skipped so a bad slot never loses the rest, and the caller's submission
// never fails because of referral side effects.
func (s *Service) FanOut(ctx context.Context, params FanOutParams) int {
	if s == nil || s.Repo == nil {
		return 0
	}

	saved := 0
	for _, ref := range Extract(params.Entries) {
		ref.ID = uuid.NewString()
		ref.AgentID = params.AgentID
		ref.SubmissionID = params.SubmissionID

		if err := s.Repo.Create(ctx, ref); err != nil {
			telemetry.Error("referral save failed", map[string]interface{}{
				"agent_id": params.AgentID,
				"error":    err.Error(),
			})
			continue
		}
		saved++

		first, last := SplitName(ref.Name)
		if s.Prospects != nil {
			_, err := s.Prospects.Capture(ctx, prospects.CaptureParams{
				AgentID:   params.AgentID,
				Email:     ref.Email,
				Phone:     ref.Phone,
				FirstName: first,
				LastName:  last,
				Source:    prospects.SourceReferral,
			})
			if err != nil {
				telemetry.Error("referral prospect create failed", map[string]interface{}{
					"agent_id": params.AgentID,
					"error":    err.Error(),
				})
			}
		}

		if s.Notify != nil {
			if err := s.Notify.NotifyReferral(ctx, params.AgentID, ref.Name); err != nil {
				telemetry.Error("referral notification failed", map[string]interface{}{
					"agent_id": params.AgentID,
					"error":    err.Error(),
				})
			}
		}

		if s.Mail != nil && params.AgentEmail != "" {
			if err := s.Mail.SendReferralNotification(ctx, params.AgentEmail, params.AgentName, ref.Name); err != nil {
				telemetry.Error("referral email failed", map[string]interface{}{
					"agent_id": params.AgentID,
					"error":    err.Error(),
				})
			}
		}
	}

	if saved > 0 {
		metrics.AddReferralsSaved(saved)
	}
	return saved
}

func (s *Service) List(ctx context.Context, agentID string, limit int) ([]Referral, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("referrals service not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.Repo.ListByAgent(ctx, agentID, limit)
}
