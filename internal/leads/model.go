package leads

import (
	"time"

	"fna-backend/internal/referrals"
)

type Lead struct {
	ID           string    `json:"id"`
	AgentID      string    `json:"agentId,omitempty"`
	ProspectID   string    `json:"prospectId,omitempty"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	ReferralCode string    `json:"referralCode,omitempty"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubmitRequest is the public lead capture payload. The referral code routes
// the lead to an agent; without a valid code the lead is stored unassigned.
type SubmitRequest struct {
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	ReferralCode string            `json:"referralCode"`
	Referrals    []referrals.Entry `json:"referrals"`
}
