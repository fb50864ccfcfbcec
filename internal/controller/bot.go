package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	backendclient "github.com/nusfitness/fitness-bot/internal/backend"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks"
	"github.com/nusfitness/fitness-bot/internal/controller/handlers"
	"github.com/nusfitness/fitness-bot/internal/history"
)

// BotController wires the Telegram transport to the command and callback
// handlers.
type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// NewBotController creates the controller with its dependencies.
func NewBotController(
	botInstance *bot.Bot,
	backend *backendclient.Client,
	charts *backendclient.ChartClient,
	historyStore history.Store,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(backend, historyStore, logger)
	callbackHandler := callbacks.NewHandler(backend, charts, historyStore, logger)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers registers all command and callback handlers.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)

	// All inline keyboard taps go through the one token router.
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands publishes the bot command menu.
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏋️ Open the main menu"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start runs the bot until the context is cancelled.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
