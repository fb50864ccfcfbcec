package screens

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/availability"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/callbacktypes"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common/keyboard"
	"github.com/nusfitness/fitness-bot/internal/model"
	"github.com/nusfitness/fitness-bot/internal/token"
)

// dateWindow is how many days ahead (today included) the date selector
// offers.
const dateWindow = 3

// HandleFacilityList renders the facility selector, two facilities per row.
func HandleFacilityList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, _ token.Route, back string) {
	kb := keyboard.NewBuilder()
	row := make([]models.InlineKeyboardButton, 0, 2)
	for _, f := range model.Facilities {
		row = append(row, keyboard.TokenButton(token.EncodeFacility(f.Name)))
		if len(row) == 2 {
			kb.AddRow(row)
			row = make([]models.InlineKeyboardButton, 0, 2)
		}
	}
	kb.AddRow(row).AddNavRow(back)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        "Which facility are you interested in?",
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleDateList renders the date selector for a facility: today plus the
// next two days.
func HandleDateList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	if model.FacilityByName(r.Facility) == nil {
		h.Logger.Error("Unknown facility in date list", zap.String("facility", r.Facility))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUnknownFacility))
		return
	}

	now := h.Clock()
	kb := keyboard.NewBuilder()
	for i := 0; i < dateWindow; i++ {
		date := now.AddDate(0, 0, i)
		kb.Row(keyboard.Button(
			date.Format(token.DateLayout),
			token.EncodeFacilityDate(r.Facility, date),
		))
	}
	kb.AddNavRow(back)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Which date would you like to pick?",
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleSlotList projects availability for the facility and date and
// renders the slot keyboard, two slots per row.
func HandleSlotList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string) {
	chatID := common.ChatIDFromCallback(callback)

	facility := model.FacilityByName(r.Facility)
	if facility == nil {
		h.Logger.Error("Unknown facility in slot list", zap.String("facility", r.Facility))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUnknownFacility))
		return
	}

	occupancy, err := h.Backend.SlotCounts(ctx, facility.Name, r.Date)
	if err != nil {
		h.Logger.Error("Failed to fetch slot counts", zap.Error(err), zap.String("facility", facility.Name))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	bookings, err := h.Backend.BookedSlots(ctx, callback.From.ID, facility.Name)
	if err != nil {
		h.Logger.Error("Failed to fetch user bookings", zap.Error(err), zap.String("facility", facility.Name))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}
	userBookings := make(map[int64]bool, len(bookings))
	for _, bk := range bookings {
		userBookings[bk.Date.Unix()] = true
	}

	states := availability.Project(facility, r.Date, occupancy, userBookings, h.Clock())
	if len(states) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        facility.Name + " is closed on this day.",
			ReplyMarkup: keyboard.NewBuilder().AddNavRow(back).Build(),
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	buttons, err := availability.Buttons(states)
	if err != nil {
		h.Logger.Error("Failed to encode slot buttons", zap.Error(err), zap.String("facility", facility.Name))
		replyFailure(ctx, b, chatID, back)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	kb := keyboard.NewBuilder()
	for _, pair := range availability.PairRows(buttons) {
		row := make([]models.InlineKeyboardButton, 0, len(pair))
		for _, btn := range pair {
			row = append(row, keyboard.Button(btn.Text, btn.Token))
		}
		kb.AddRow(row)
	}
	kb.AddNavRow(back)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Select a slot to book or cancel",
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}
