package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Multi fans a notification out to every sink, collecting sink errors
// without short-circuiting.
type Multi struct {
	sinks []Notifier
}

// NewMulti combines the given sinks; nil sinks are skipped.
func NewMulti(sinks ...Notifier) *Multi {
	clean := make([]Notifier, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			clean = append(clean, sink)
		}
	}
	return &Multi{sinks: clean}
}

func (m *Multi) Notify(ctx context.Context, severity Severity, message string) error {
	var errs error
	for _, sink := range m.sinks {
		errs = multierr.Append(errs, sink.Notify(ctx, severity, message))
	}
	return errs
}
