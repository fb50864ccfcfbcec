package keyboard

import (
	"github.com/go-telegram/bot/models"

	"github.com/nusfitness/fitness-bot/internal/token"
)

// BackButton creates a "Back" button. Its callback data is the previous
// menu's own token, resolved from history, so tapping it re-dispatches that
// menu's rule.
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Back", callbackData)
}

// MainMenuButton creates the absolute "Main menu" anchor.
func MainMenuButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", token.Start)
}

// ConfirmButton creates a "Confirm" button.
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// NavRow builds the dual-anchor navigation row every non-terminal screen
// carries: Back to the previous menu plus the Start anchor. Confirmation
// and result screens must never be a dead end.
func NavRow(backToken string) []models.InlineKeyboardButton {
	if backToken == "" || backToken == token.Start {
		return []models.InlineKeyboardButton{MainMenuButton()}
	}
	return []models.InlineKeyboardButton{
		BackButton(backToken),
		MainMenuButton(),
	}
}

// AddNavRow appends the dual-anchor navigation row to the builder.
func (b *Builder) AddNavRow(backToken string) *Builder {
	return b.AddRow(NavRow(backToken))
}
