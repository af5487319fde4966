package intake

import (
	"time"

	"fna-backend/internal/fna"
	"fna-backend/internal/referrals"
)

// SubmitRequest is the balance sheet intake payload. The profile carries the
// financial figures; email and phone identify the prospect; referral slots
// ride along with the form.
type SubmitRequest struct {
	fna.Profile

	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Referrals []referrals.Entry `json:"referrals"`
}

// AnalysisResult bundles the calculator outputs for one submission. Exactly
// one of the personal or business pairs is populated, per the form type.
type AnalysisResult struct {
	Personal           *fna.Result             `json:"personal,omitempty"`
	IncomeProtection   *fna.IncomeProtection   `json:"incomeProtection,omitempty"`
	Business           *fna.BusinessResult     `json:"business,omitempty"`
	BusinessProtection *fna.BusinessProtection `json:"businessProtection,omitempty"`
}

// Submission is a stored balance sheet with its computed analysis.
type Submission struct {
	ID         string         `json:"id"`
	AgentID    string         `json:"agentId"`
	ProspectID string         `json:"prospectId,omitempty"`
	FormType   string         `json:"formType"`
	Profile    fna.Profile    `json:"profile"`
	Result     AnalysisResult `json:"result"`
	CreatedAt  time.Time      `json:"createdAt"`
}
