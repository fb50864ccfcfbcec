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

// HandleDisabledTap answers a tap on an elapsed slot with a transient
// notice. Nothing is rendered and nothing is recorded.
func HandleDisabledTap(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, _ string) {
	common.AnswerCallbackAlert(ctx, b, callback.ID, "⏰ This slot is already over and can no longer be selected.")
}

// HandleBookConfirm renders the booking confirmation prompt for a bare slot
// token.
func HandleBookConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	credits, err := h.Backend.CreditsLeft(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to fetch credits", zap.Error(err), zap.Int64("chat_id", chatID))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	confirmTok, err := r.Encode()
	if err != nil {
		h.Logger.Error("Failed to re-encode slot token", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUnknownToken))
		return
	}

	text := fmt.Sprintf(
		"Book %s on %s at %s?\n\nYou have %d credit(s) left this month.",
		r.Facility, r.Date.Format(token.DateLayout), r.Hour, credits,
	)
	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmButton(token.WithAction(confirmTok, token.ActionBook))).
		AddNavRow(back).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCancelConfirm renders the cancellation prompt for a slot the user
// already booked (✅-flagged token).
func HandleCancelConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	confirmTok, err := r.Encode()
	if err != nil {
		h.Logger.Error("Failed to re-encode slot token", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUnknownToken))
		return
	}

	text := fmt.Sprintf(
		"Cancel your booking for %s on %s at %s?",
		r.Facility, r.Date.Format(token.DateLayout), r.Hour,
	)
	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmButton(token.WithAction(confirmTok, token.ActionCancel))).
		AddNavRow(back).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleBookExecute performs the booking. The backend is authoritative: a
// success:false response is an expected business rejection, not a fault.
// The back target skips the confirmation screen (skip depth 2).
func HandleBookExecute(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)
	slotTime := r.SlotTime()

	credits, err := h.Backend.CreditsLeft(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to fetch credits", zap.Error(err), zap.Int64("chat_id", chatID))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}
	if credits <= 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "You have no booking credits left this month, so this slot cannot be booked.",
			ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	ok, err := h.Backend.Book(ctx, callback.From.ID, r.Facility, slotTime)
	if err != nil {
		h.Logger.Error("Book call failed", zap.Error(err),
			zap.String("facility", r.Facility), zap.Time("slot", slotTime))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "❌ The slot could not be booked. It may already be full, or you may have booked it before.",
			ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	if _, err := h.Backend.UpdateCredits(ctx, callback.From.ID); err != nil {
		// The booking itself went through; the backend reconciles credits.
		h.Logger.Error("UpdateCredits failed after booking", zap.Error(err), zap.Int64("chat_id", chatID))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("✅ Booked %s on %s at %s. See you there!",
			r.Facility, r.Date.Format(token.DateLayout), r.Hour),
		ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "Booked!")
}

// HandleCancelExecute performs the cancellation. The backend enforces the
// cancellation window and reports a business rejection as success:false.
func HandleCancelExecute(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)
	slotTime := r.SlotTime()

	ok, err := h.Backend.CancelBooking(ctx, callback.From.ID, r.Facility, slotTime)
	if err != nil {
		h.Logger.Error("Cancel call failed", zap.Error(err),
			zap.String("facility", r.Facility), zap.Time("slot", slotTime))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "❌ The booking could not be cancelled. Cancellation may no longer be possible this close to the slot.",
			ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("✅ Your booking for %s on %s at %s has been cancelled.",
			r.Facility, r.Date.Format(token.DateLayout), r.Hour),
		ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "Cancelled")
}
