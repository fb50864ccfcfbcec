package screens

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/callbacktypes"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common/keyboard"
	"github.com/nusfitness/fitness-bot/internal/model"
	"github.com/nusfitness/fitness-bot/internal/token"
)

// HandleBookedSlots renders the user's reservations as a monospace table.
func HandleBookedSlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	bookings, err := h.Backend.BookedSlots(ctx, callback.From.ID, "")
	if err != nil {
		h.Logger.Error("Failed to fetch booked slots", zap.Error(err), zap.Int64("chat_id", chatID))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	if len(bookings) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "You have no upcoming bookings.",
			ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	var sb strings.Builder
	sb.WriteString("<pre>\n")
	sb.WriteString("|            Facility           |       Date      | Time |\n")
	sb.WriteString("|-------------------------------|-----------------|------|\n")
	for _, bk := range bookings {
		local := bk.Date.Local()
		sb.WriteString(fmt.Sprintf("| %-29s | %s | %s |\n",
			bk.Facility,
			local.Format("Mon Jan 02 2006"),
			local.Format("1504")))
	}
	sb.WriteString("</pre>")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleTraffic renders the live occupancy count of every facility.
func HandleTraffic(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	counts, err := h.Backend.CurrentTraffic(ctx)
	if err != nil {
		h.Logger.Error("Failed to fetch current traffic", zap.Error(err))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏋️ Current traffic:\n\n")
	for i, f := range model.Facilities {
		count := 0
		if i < len(counts) {
			count = counts[i]
		}
		sb.WriteString(fmt.Sprintf("%s: %d / %d\n", f.Name, count, f.MaxCapacity))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleChartList renders the facility selector for occupancy charts.
func HandleChartList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, back string) {
	kb := keyboard.NewBuilder()
	row := make([]models.InlineKeyboardButton, 0, 2)
	for _, f := range model.Facilities {
		row = append(row, keyboard.Button(f.Name, token.EncodeChart(f.Name)))
		if len(row) == 2 {
			kb.AddRow(row)
			row = make([]models.InlineKeyboardButton, 0, 2)
		}
	}
	kb.AddRow(row).AddNavRow(back)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        "Which facility's occupancy chart would you like to see?",
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleChartView fetches the pre-rendered occupancy chart for a facility
// and sends it as a photo.
func HandleChartView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	if model.FacilityByName(r.Facility) == nil {
		h.Logger.Error("Unknown facility in chart view", zap.String("facility", r.Facility))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUnknownFacility))
		return
	}
	if h.Charts == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "Charts are not available right now.",
			ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	img, err := h.Charts.OccupancyChart(ctx, r.Facility)
	if err != nil {
		h.Logger.Error("Failed to fetch chart", zap.Error(err), zap.String("facility", r.Facility))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "chart.png",
			Data:     bytes.NewReader(img),
		},
		Caption:     r.Facility + ": weekly occupancy",
		ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}
