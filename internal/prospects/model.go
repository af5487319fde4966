package prospects

import "time"

// Prospect lifecycle statuses.
const (
	StatusNew          = "NEW"
	StatusAnalysisSent = "ANALYSIS_SENT"
)

// Prospect sources.
const (
	SourceBalanceSheet       = "BALANCE_SHEET"
	SourceBalanceSheetPublic = "BALANCE_SHEET_PUBLIC"
	SourceReferral           = "REFERRAL"
)

type Prospect struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agentId"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type BusinessProspect struct {
	ID           string    `json:"id"`
	AgentID      string    `json:"agentId"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ContactName  string    `json:"contactName"`
	BusinessName string    `json:"businessName"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
