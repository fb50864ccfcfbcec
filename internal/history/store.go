// Package history provides the per-chat menu back-stack. The bot itself is
// stateless between callbacks; every rendered menu token is recorded here so
// a later Back press can resolve where the user came from.
package history

import "context"

// Store is the menu history capability the router holds. Record appends the
// token just rendered for a chat; Resolve returns the token skip positions
// back from the most recent one, or the Start anchor once history is
// exhausted. Both may fail as remote calls do; on a Resolve failure the
// caller degrades to offering only a Start link.
type Store interface {
	Record(ctx context.Context, chatID int64, token string) error
	Resolve(ctx context.Context, chatID int64, skip int) (string, error)
}
