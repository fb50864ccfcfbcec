package callbacks

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	backendclient "github.com/nusfitness/fitness-bot/internal/backend"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/callbacktypes"
	"github.com/nusfitness/fitness-bot/internal/history"
)

// Handler wraps callbacktypes.Handler with the callback query entry point.
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler creates the callback handler with its dependencies. charts may
// be nil when no chart service is configured.
func NewHandler(
	backend *backendclient.Client,
	charts *backendclient.ChartClient,
	historyStore history.Store,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		Backend: backend,
		Charts:  charts,
		History: historyStore,
		Logger:  logger,
		Now:     time.Now,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery is the single handler registered for all callback
// queries. Every tap gets its own request ID for log correlation.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	scoped := *h.Handler
	scoped.Logger = h.Logger.With(zap.String("request_id", uuid.NewString()))

	scoped.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID))

	Route(ctx, b, callback, &scoped)
}
