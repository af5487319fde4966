package referrals

import "time"

// A submission form carries up to this many referral slots.
const MaxPerSubmission = 4

type Referral struct {
	ID           string    `json:"id"`
	AgentID      string    `json:"agentId"`
	SubmissionID string    `json:"submissionId,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Entry is one raw referral slot as submitted: a free-text name and a single
// contact field that may hold either an email or a phone number.
type Entry struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
