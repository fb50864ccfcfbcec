package common

import "errors"

// Shared errors for the callback handlers.
var (
	ErrNoMessage       = errors.New("no message in callback")
	ErrUnknownFacility = errors.New("unknown facility")
	ErrUnknownToken    = errors.New("token matches no known shape")
	ErrNotLoggedIn     = errors.New("chat is not linked to an account")
)

// ErrorMessage maps an error to the user-visible reply text.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ Unable to process this message. Please use /start"
	case errors.Is(err, ErrUnknownFacility):
		return "❌ Unknown facility"
	case errors.Is(err, ErrUnknownToken):
		return "❌ Unknown command"
	case errors.Is(err, ErrNotLoggedIn):
		return "You are currently not logged in to @NUSFitness_Bot. Please login using the NUSFitness website."
	default:
		return "❌ Something went wrong. Please try again later."
	}
}
