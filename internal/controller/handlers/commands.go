package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/screens"
	"github.com/nusfitness/fitness-bot/internal/token"
)

// HandleStart handles the /start command. The account link lives in the
// backend; an unlinked chat is told to log in on the NUSFitness website.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	loggedIn, err := h.backend.IsLoggedIn(ctx, chatID)
	if err != nil {
		h.logger.Error("isLoggedIn check failed", zap.Error(err), zap.Int64("chat_id", chatID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(err),
		})
		return
	}

	if !loggedIn {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(common.ErrNotLoggedIn),
		})
		return
	}

	if err := h.history.Record(ctx, chatID, token.Start); err != nil {
		h.logger.Warn("Failed to record menu", zap.Error(err), zap.Int64("chat_id", chatID))
	}

	screens.RenderStartMenu(ctx, b, chatID)
}

// HandleHelp handles the /help command.
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "🏋️ NUSFitness booking bot\n\n" +
		"/start - Open the main menu\n" +
		"/help - Show this help\n\n" +
		"From the main menu you can make or cancel facility bookings, " +
		"view your booked slots, check live facility traffic and see " +
		"occupancy charts.\n\n" +
		"Bookings require a linked NUSFitness account. Login on the " +
		"NUSFitness website to link this chat."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}
