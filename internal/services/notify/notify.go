// Package notify provides the fire-and-forget notification sink. The log
// notifier is the default; a real push/toast delivery channel can replace it
// behind the same interface.
package notify

import (
	"context"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the structured log. Delivery is
// best-effort by contract; nothing is returned to the caller.
type LogNotifier struct {
	logger *common.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *common.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(_ context.Context, userID, message string) {
	n.logger.Info().Str("user_id", userID).Str("kind", "success").Msg(message)
}

func (n *LogNotifier) Error(_ context.Context, userID, message string) {
	n.logger.Error().Str("user_id", userID).Str("kind", "error").Msg(message)
}

func (n *LogNotifier) Info(_ context.Context, userID, message string) {
	n.logger.Info().Str("user_id", userID).Str("kind", "info").Msg(message)
}
