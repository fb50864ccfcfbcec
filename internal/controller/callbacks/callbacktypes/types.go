package callbacktypes

import (
	"time"

	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/backend"
	"github.com/nusfitness/fitness-bot/internal/history"
)

// Handler carries the shared dependencies for all callback handlers. The
// bot holds no per-chat state of its own; everything a handler needs comes
// from here or from the token it was dispatched with.
type Handler struct {
	Backend *backend.Client
	Charts  *backend.ChartClient
	History history.Store
	Logger  *zap.Logger

	// Now is the wall clock used for slot state computation. Overridable in
	// tests.
	Now func() time.Time
}

// Clock returns the current time via Now, defaulting to time.Now.
func (h *Handler) Clock() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
