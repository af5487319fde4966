package prospects

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

// PlaceholderEmail returns a unique synthetic address for submissions that
// arrive without one, so the (agent, email) uniqueness constraint holds
// without collapsing unrelated anonymous prospects into one row.
func PlaceholderEmail() string {
	return fmt.Sprintf("no-email+%s@internal.invalid", uuid.NewString())
}

// CaptureParams describes a prospect arriving from a balance sheet
// submission, a public lead form, or a referral extraction.
type CaptureParams struct {
	AgentID      string
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	BusinessName string
	Source       string
	Business     bool
}

// Capture records the prospect, deduplicating on (agent, email). A missing
// email is replaced with a unique placeholder.
func (s *Service) Capture(ctx context.Context, params CaptureParams) (id string, err error) {
	if s == nil || s.Repo == nil {
		return "", errors.New("prospects service not configured")
	}
	if strings.TrimSpace(params.AgentID) == "" {
		return "", errors.New("agent id is required")
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		email = PlaceholderEmail()
	}
	source := params.Source
	if source == "" {
		source = SourceBalanceSheet
	}

	if params.Business {
		contactName := strings.TrimSpace(strings.TrimSpace(params.FirstName) + " " + strings.TrimSpace(params.LastName))
		saved, err := s.Repo.UpsertBusiness(ctx, BusinessProspect{
			ID:           uuid.NewString(),
			AgentID:      params.AgentID,
			Email:        email,
			Phone:        strings.TrimSpace(params.Phone),
			ContactName:  contactName,
			BusinessName: strings.TrimSpace(params.BusinessName),
			Source:       source,
			Status:       StatusNew,
		})
		if err != nil {
			return "", err
		}
		return saved.ID, nil
	}

	saved, err := s.Repo.Upsert(ctx, Prospect{
		ID:        uuid.NewString(),
		AgentID:   params.AgentID,
		Email:     email,
		Phone:     strings.TrimSpace(params.Phone),
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Source:    source,
		Status:    StatusNew,
	})
	if err != nil {
		return "", err
	}
	return saved.ID, nil
}

// MarkAnalysisSent flips the prospect to ANALYSIS_SENT once an analysis has
// been produced for them.
func (s *Service) MarkAnalysisSent(ctx context.Context, agentID, prospectID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("prospects service not configured")
	}
	return s.Repo.UpdateStatus(ctx, agentID, prospectID, StatusAnalysisSent)
}

func (s *Service) List(ctx context.Context, agentID string, limit, offset int) ([]Prospect, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("prospects service not configured")
	}
	limit, offset = clampPage(limit, offset)
	return s.Repo.ListByAgent(ctx, agentID, limit, offset)
}

func (s *Service) ListBusiness(ctx context.Context, agentID string, limit, offset int) ([]BusinessProspect, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("prospects service not configured")
	}
	limit, offset = clampPage(limit, offset)
	return s.Repo.ListBusinessByAgent(ctx, agentID, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
