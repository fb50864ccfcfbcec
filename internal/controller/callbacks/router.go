package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/callbacktypes"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/common"
	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/screens"
	"github.com/nusfitness/fitness-bot/internal/token"
)

// ========================
// Dispatch Rules
// ========================

// HandlerFunc is a screen handler. back is the Back target resolved from
// menu history for this rule's skip depth.
type HandlerFunc func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, r token.Route, back string)

// rule is one dispatch entry. Rules are evaluated top to bottom and the
// first match wins, so the list must stay ordered from the most specific
// shape to the least specific one. record marks rules that render a menu
// and therefore push their token onto the history stack before resolving
// the Back target.
type rule struct {
	name   string
	skip   int
	record bool
	match  func(data string, r token.Route) bool
	handle HandlerFunc
}

func reserved(word string) func(string, token.Route) bool {
	return func(_ string, r token.Route) bool {
		return r.Kind == token.KindReserved && r.Reserved == word
	}
}

// routingRules is the ordered dispatch table. Ordering is load-bearing: a
// ❌-flagged token must hit the disabled-tap rule before any slot shape
// could claim it, and the execution rules must run before the bare
// confirmation prompts.
var routingRules = []rule{
	// Reserved top-level menus.
	{name: "start", record: true, match: reserved(token.Start), handle: screens.HandleStart},
	{name: "booking", skip: 1, record: true, match: reserved(token.Booking), handle: screens.HandleBooking},
	{name: "booked-slots", skip: 1, record: true, match: reserved(token.BookedSlots), handle: screens.HandleBookedSlots},
	{name: "make-and-cancel", skip: 1, record: true, match: reserved(token.MakeAndCancel), handle: screens.HandleFacilityList},
	{name: "dashboard", skip: 1, record: true, match: reserved(token.Dashboard), handle: screens.HandleDashboard},
	{name: "current-traffic", skip: 1, record: true, match: reserved(token.CurrentTraffic), handle: screens.HandleTraffic},
	{name: "charts", skip: 1, record: true, match: reserved(token.Charts), handle: screens.HandleChartList},
	// Cancel records the Start anchor itself since that is the menu it
	// renders.
	{name: "cancel-flow", match: reserved(token.Cancel), handle: screens.HandleCancelFlow},

	// Booking / cancellation execution (4-field action tokens). Skip depth
	// 2: Back from the result must land on the slot list, not on the
	// confirmation screen the user just came through.
	{
		name: "book-execute", skip: 2, record: true,
		match: func(_ string, r token.Route) bool {
			return r.Kind == token.KindConfirm && r.Action == token.ActionBook && !r.Flags.Disabled
		},
		handle: screens.HandleBookExecute,
	},
	{
		name: "cancel-execute", skip: 2, record: true,
		match: func(_ string, r token.Route) bool {
			return r.Kind == token.KindConfirm && r.Action == token.ActionCancel && !r.Flags.Disabled
		},
		handle: screens.HandleCancelExecute,
	},

	// A tap on any ❌-flagged token is answered with a transient notice and
	// never dispatched further.
	{
		name: "disabled-tap",
		match: func(data string, _ token.Route) bool {
			return token.HasDisabledFlag(data)
		},
		handle: screens.HandleDisabledTap,
	},

	// ✅ without an action suffix: the user tapped a slot they already
	// booked, so prompt for cancellation.
	{
		name: "cancel-confirm", skip: 1, record: true,
		match: func(_ string, r token.Route) bool {
			return r.Kind == token.KindSlot && r.Flags.Booked
		},
		handle: screens.HandleCancelConfirm,
	},

	// Bare slot selection and chart view, disambiguated by suffix.
	{
		name: "book-confirm", skip: 1, record: true,
		match: func(_ string, r token.Route) bool {
			return r.Kind == token.KindSlot
		},
		handle: screens.HandleBookConfirm,
	},
	{
		name: "chart-view", skip: 1, record: true,
		match: func(_ string, r token.Route) bool {
			return r.Kind == token.KindChart
		},
		handle: screens.HandleChartView,
	},

	// facility_date: slot list.
	{
		name: "slot-list", skip: 1, record: true,
		match: func(_ string, r token.Route) bool {
			return r.Kind == token.KindFacilityDate
		},
		handle: screens.HandleSlotList,
	},

	// Bare facility name: date list.
	{
		name: "date-list", skip: 1, record: true,
		match: func(_ string, r token.Route) bool {
			return r.Kind == token.KindFacility
		},
		handle: screens.HandleDateList,
	},
}

// matchRule returns the first rule claiming the token, or nil.
func matchRule(data string, r token.Route) *rule {
	for i := range routingRules {
		if routingRules[i].match(data, r) {
			return &routingRules[i]
		}
	}
	return nil
}

// ========================
// Main Callback Router
// ========================

// Route decodes the inbound token, selects exactly one dispatch rule,
// records the rendered menu in history and hands the handler its resolved
// Back target. Tokens that decode to nothing are a programming-error class:
// every token we ever see was produced by our own codec.
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data
	chatID := common.ChatIDFromCallback(callback)

	r, err := token.Decode(data)
	if err != nil {
		h.Logger.Error("Undecodable callback token",
			zap.String("data", data),
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUnknownToken))
		return
	}

	rl := matchRule(data, r)
	if rl == nil {
		h.Logger.Error("Token matched no dispatch rule",
			zap.String("data", data),
			zap.Int64("chat_id", chatID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrUnknownToken))
		return
	}

	h.Logger.Info("Routing callback",
		zap.String("rule", rl.name),
		zap.String("data", data),
		zap.Int64("chat_id", chatID))

	// Record first, then resolve: the current menu goes on top of the
	// stack, so skip counts from it.
	if rl.record {
		if err := h.History.Record(ctx, chatID, data); err != nil {
			h.Logger.Warn("Failed to record menu",
				zap.Error(err), zap.Int64("chat_id", chatID))
		}
	}

	back := token.Start
	if rl.skip > 0 {
		resolved, err := h.History.Resolve(ctx, chatID, rl.skip)
		if err != nil {
			// Degrade to the Start anchor rather than failing the reply.
			h.Logger.Warn("Failed to resolve back target",
				zap.Error(err), zap.Int64("chat_id", chatID), zap.Int("skip", rl.skip))
		} else {
			back = resolved
		}
	}

	rl.handle(ctx, b, callback, h, r, back)
}
