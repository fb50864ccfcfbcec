package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions shared by all callback handlers.

// AnswerCallback answers a callback query without an alert.
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert answers a callback query with a popup alert.
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback extracts the message a callback originated from.
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ChatIDFromCallback returns the chat the callback belongs to, falling back
// to the tapping user's ID when the original message is inaccessible.
func ChatIDFromCallback(callback *models.CallbackQuery) int64 {
	if msg := GetMessageFromCallback(callback); msg != nil {
		return msg.Chat.ID
	}
	return callback.From.ID
}
