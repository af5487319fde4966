// Package intake runs balance sheet submissions end to end: it registers the
// prospect, computes the analysis, stores both, and fans out referrals.
package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fna-backend/internal/fna"
	"fna-backend/internal/prospects"
	"fna-backend/internal/referrals"
	"fna-backend/internal/shared/metrics"
	"fna-backend/internal/shared/telemetry"
)

type Service struct {
	Repo      Repo
	Prospects *prospects.Service
	Referrals *referrals.Service
}

func NewService(repo Repo, prospectsSvc *prospects.Service, referralsSvc *referrals.Service) *Service {
	return &Service{Repo: repo, Prospects: prospectsSvc, Referrals: referralsSvc}
}

// SubmitParams identifies the submitting agent alongside the request body.
type SubmitParams struct {
	AgentID    string
	AgentName  string
	AgentEmail string
	Request    SubmitRequest
}

// Submit runs a balance sheet submission synchronously. The analysis itself
// never fails; storage errors abort the submission before any referral side
// effects fire.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (Submission, error) {
	if s == nil || s.Repo == nil {
		return Submission{}, errors.New("intake service not configured")
	}

	metrics.IncSubmissionStarted()
	start := time.Now()

	profile := params.Request.Profile
	formType := profile.FormType
	if formType != fna.FormTypeBusiness {
		formType = fna.FormTypePersonal
	}
	profile.FormType = formType
	business := formType == fna.FormTypeBusiness

	prospectID := ""
	if s.Prospects != nil {
		id, err := s.Prospects.Capture(ctx, prospects.CaptureParams{
			AgentID:      params.AgentID,
			Email:        params.Request.Email,
			Phone:        params.Request.Phone,
			FirstName:    profile.FirstName,
			LastName:     profile.LastName,
			BusinessName: profile.BusinessName,
			Source:       prospects.SourceBalanceSheet,
			Business:     business,
		})
		if err != nil {
			metrics.IncSubmissionFailed()
			return Submission{}, fmt.Errorf("capture prospect: %w", err)
		}
		prospectID = id
	}

	result := Analyze(profile)

	submission := Submission{
		ID:         uuid.NewString(),
		AgentID:    params.AgentID,
		ProspectID: prospectID,
		FormType:   formType,
		Profile:    profile,
		Result:     result,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, submission); err != nil {
		metrics.IncSubmissionFailed()
		return Submission{}, fmt.Errorf("store submission: %w", err)
	}

	if s.Prospects != nil && prospectID != "" {
		if err := s.Prospects.MarkAnalysisSent(ctx, params.AgentID, prospectID); err != nil {
			telemetry.Warn("prospect status update failed", map[string]interface{}{
				"agent_id":    params.AgentID,
				"prospect_id": prospectID,
				"error":       err.Error(),
			})
		}
	}

	if s.Referrals != nil {
		s.Referrals.FanOut(ctx, referrals.FanOutParams{
			AgentID:      params.AgentID,
			AgentName:    params.AgentName,
			AgentEmail:   params.AgentEmail,
			SubmissionID: submission.ID,
			Entries:      params.Request.Referrals,
		})
	}

	metrics.IncSubmissionCompleted()
	metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
	return submission, nil
}

// Analyze computes the full analysis for a profile. Personal profiles get the
// health score plus income protection; business profiles get the business
// score plus valuation-driven protection.
func Analyze(profile fna.Profile) AnalysisResult {
	if profile.FormType == fna.FormTypeBusiness {
		business := fna.CalculateBusiness(profile)
		protection := fna.CalculateBusinessProtection(profile)
		return AnalysisResult{Business: &business, BusinessProtection: &protection}
	}
	personal := fna.CalculatePersonal(profile)
	income := fna.CalculateIncomeProtection(profile)
	return AnalysisResult{Personal: &personal, IncomeProtection: &income}
}

func (s *Service) Get(ctx context.Context, agentID, submissionID string) (Submission, error) {
	if s == nil || s.Repo == nil {
		return Submission{}, errors.New("intake service not configured")
	}
	return s.Repo.GetByID(ctx, agentID, submissionID)
}

func (s *Service) List(ctx context.Context, agentID string, limit, offset int) ([]Submission, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("intake service not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByAgent(ctx, agentID, limit, offset)
}
