package notify

import "context"

// Severity tags a user-facing message.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Notifier delivers a human-readable message to the user. Fire and forget:
// the mutation engine never fails a cart operation over a notifier error.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string) error
}
