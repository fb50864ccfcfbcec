// Package screens holds one handler per conversational screen. Handlers
// receive their dependencies, the decoded route and the resolved Back
// target; they query the backend, render a keyboard and reply. They never
// keep state between calls.
package screens

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/callbacktypes"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common/keyboard"
	"github.com/nusfitness/fitness-bot/internal/token"
)

// RenderStartMenu sends the top-level menu. Shared by the /start command
// handler and the Start callback.
func RenderStartMenu(ctx context.Context, b *bot.Bot, chatID int64) {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("Booking", token.Booking),
			keyboard.Button("Dashboard", token.Dashboard),
		).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "What would you like to do today?",
		ReplyMarkup: kb,
	})
}

// HandleStart renders the Start menu from a callback tap.
func HandleStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, _ string) {
	RenderStartMenu(ctx, b, common.ChatIDFromCallback(callback))
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleBooking renders the booking sub-menu.
func HandleBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, back string) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("View booked slots", token.BookedSlots)).
		Row(keyboard.Button("Make or cancel a booking", token.MakeAndCancel)).
		AddNavRow(back).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        "What kind of booking function would you like to perform?",
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleDashboard shows remaining credits and the dashboard sub-menu.
func HandleDashboard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	credits, err := h.Backend.CreditsLeft(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to fetch credits", zap.Error(err), zap.Int64("chat_id", chatID))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("Current traffic", token.CurrentTraffic),
			keyboard.Button("Charts", token.Charts),
		).
		AddNavRow(back).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("You have %d credit(s) left this month.\nWhat would you like to see?", credits),
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCancelFlow aborts whatever flow the user is in and returns to the
// Start menu.
func HandleCancelFlow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, _ string) {
	chatID := common.ChatIDFromCallback(callback)

	if err := h.History.Record(ctx, chatID, token.Start); err != nil {
		h.Logger.Warn("Failed to record menu", zap.Error(err), zap.Int64("chat_id", chatID))
	}

	RenderStartMenu(ctx, b, chatID)
	common.AnswerCallback(ctx, b, callback.ID, "Cancelled")
}

// replyFailure sends the generic transport-fault reply with navigation so
// the user is never left hanging.
func replyFailure(ctx context.Context, b *bot.Bot, chatID int64, back string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "❌ Something went wrong. Please try again later.",
		ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
	})
}
