package notify

import (
	"context"
	"errors"

	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
)

// LoggerNotifier mirrors every notification into the structured log.
type LoggerNotifier struct {
	logg *logger.Logger
}

// NewLoggerNotifier wires the log sink.
func NewLoggerNotifier(logg *logger.Logger) *LoggerNotifier {
	return &LoggerNotifier{logg: logg}
}

func (n *LoggerNotifier) Notify(ctx context.Context, severity Severity, message string) error {
	if n.logg == nil {
		return nil
	}
	ctx = n.logg.WithField(ctx, "notification_severity", string(severity))
	switch severity {
	case SeverityError:
		n.logg.Error(ctx, "cart.notification", errors.New(message))
	case SeverityWarn:
		n.logg.Warn(ctx, message)
	default:
		n.logg.Info(ctx, message)
	}
	return nil
}
