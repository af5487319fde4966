package notifications

import "time"

// Notification kinds.
const (
	KindReferralReceived = "REFERRAL_RECEIVED"
	KindLeadCaptured     = "LEAD_CAPTURED"
)

type Notification struct {
	ID        string     `json:"id"`
	AgentID   string     `json:"agentId"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
