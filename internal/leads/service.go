package leads

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"fna-backend/internal/agents"
	"fna-backend/internal/prospects"
	"fna-backend/internal/referrals"
	"fna-backend/internal/shared/metrics"
	"fna-backend/internal/shared/telemetry"
)

var ErrEmailRequired = errors.New("email or phone is required")

// agentLookup is the slice of the agents service the lead capture needs.
type agentLookup interface {
	GetByReferralCode(ctx context.Context, code string) (agents.Agent, error)
}

// leadNotifier is the slice of the notifications service the lead capture needs.
type leadNotifier interface {
	NotifyLead(ctx context.Context, agentID, leadName string) error
}

type Service struct {
	Repo      Repo
	Agents    agentLookup
	Prospects *prospects.Service
	Notify    leadNotifier
	Referrals *referrals.Service
}

func NewService(repo Repo, agentsSvc agentLookup, prospectsSvc *prospects.Service, notify leadNotifier, referralsSvc *referrals.Service) *Service {
	return &Service{Repo: repo, Agents: agentsSvc, Prospects: prospectsSvc, Notify: notify, Referrals: referralsSvc}
}

// Submit captures a public lead. A valid referral code routes the lead to the
// owning agent and creates a prospect for them; an unknown code still stores
// the lead unassigned so nothing submitted is lost.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Lead, error) {
	if s == nil || s.Repo == nil {
		return Lead{}, errors.New("leads service not configured")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return Lead{}, ErrEmailRequired
	}

	lead := Lead{
		ID:           uuid.NewString(),
		Email:        email,
		Phone:        phone,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		ReferralCode: strings.ToUpper(strings.TrimSpace(req.ReferralCode)),
		Source:       prospects.SourceBalanceSheetPublic,
	}

	var agent agents.Agent
	agentResolved := false
	if s.Agents != nil && lead.ReferralCode != "" {
		var err error
		agent, err = s.Agents.GetByReferralCode(ctx, lead.ReferralCode)
		if err == nil {
			agentResolved = true
			lead.AgentID = agent.ID
		} else if !errors.Is(err, agents.ErrNotFound) {
			return Lead{}, err
		}
	}

	if agentResolved && s.Prospects != nil {
		prospectID, err := s.Prospects.Capture(ctx, prospects.CaptureParams{
			AgentID:   agent.ID,
			Email:     email,
			Phone:     phone,
			FirstName: lead.FirstName,
			LastName:  lead.LastName,
			Source:    prospects.SourceBalanceSheetPublic,
		})
		if err != nil {
			telemetry.Error("lead prospect create failed", map[string]interface{}{
				"agent_id": agent.ID,
				"error":    err.Error(),
			})
		} else {
			lead.ProspectID = prospectID
		}
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		return Lead{}, err
	}
	metrics.IncLeadCaptured()

	if agentResolved {
		if s.Notify != nil {
			name := strings.TrimSpace(lead.FirstName + " " + lead.LastName)
			if err := s.Notify.NotifyLead(ctx, agent.ID, name); err != nil {
				telemetry.Error("lead notification failed", map[string]interface{}{
					"agent_id": agent.ID,
					"error":    err.Error(),
				})
			}
		}
		if s.Referrals != nil {
			s.Referrals.FanOut(ctx, referrals.FanOutParams{
				AgentID:    agent.ID,
				AgentName:  strings.TrimSpace(agent.FirstName + " " + agent.LastName),
				AgentEmail: agent.Email,
				Entries:    req.Referrals,
			})
		}
	}

	return lead, nil
}

func (s *Service) ListByAgent(ctx context.Context, agentID string, limit int) ([]Lead, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("leads service not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.Repo.ListByAgent(ctx, agentID, limit)
}
