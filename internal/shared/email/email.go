// Package email sends agent-facing notification mail. The SES sender is used
// when email is enabled in config; otherwise a log-only sender is substituted
// so local development never needs AWS credentials.
package email

import (
	"context"
	"fmt"

	"fna-backend/internal/shared/telemetry"
)

// Sender delivers transactional email to agents.
type Sender interface {
	SendReferralNotification(ctx context.Context, to, agentName, referralName string) error
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// LogSender writes the would-be email to the structured log instead of
// sending it. Used when EMAIL_ENABLED is false or SES setup fails.
type LogSender struct{}

func (LogSender) SendReferralNotification(ctx context.Context, to, agentName, referralName string) error {
	telemetry.Info("email suppressed", map[string]interface{}{
		"kind": "referral_notification",
		"to":   to,
		"name": referralName,
	})
	return nil
}

func (LogSender) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	telemetry.Info("email suppressed", map[string]interface{}{
		"kind": "password_reset",
		"to":   to,
	})
	return nil
}

func referralSubject(referralName string) string {
	return fmt.Sprintf("New referral: %s", referralName)
}

func referralBody(agentName, referralName string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nA new referral (%s) was captured from a balance sheet submission. "+
			"Log in to review their contact details.\n",
		agentName, referralName,
	)
}

func passwordResetBody(resetURL string) string {
	return fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Reset your password here: %s\n\n"+
			"If you did not request this, you can ignore this email.\n",
		resetURL,
	)
}
