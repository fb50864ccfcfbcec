package handlers

import (
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/backend"
	"github.com/nusfitness/fitness-bot/internal/history"
)

// Handlers carries the dependencies for the text command handlers.
type Handlers struct {
	backend *backend.Client
	history history.Store
	logger  *zap.Logger
}

// NewHandlers creates the command handlers.
func NewHandlers(
	backendClient *backend.Client,
	historyStore history.Store,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		backend: backendClient,
		history: historyStore,
		logger:  logger,
	}
}
