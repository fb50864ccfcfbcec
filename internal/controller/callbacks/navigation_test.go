package callbacks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/controller/callbacks/callbacktypes"
	"github.com/nusfitness/fitness-bot/internal/token"
)

// brokenStore records menus normally but fails every Resolve call, the
// shape of a history backend outage.
type brokenStore struct {
	mu       sync.Mutex
	recorded []string
}

func (s *brokenStore) Record(_ context.Context, _ int64, tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded = append(s.recorded, tok)
	return nil
}

func (s *brokenStore) Resolve(context.Context, int64, int) (string, error) {
	return "", errors.New("history store unavailable")
}

// telegramStub fakes the Bot API server and captures the inline keyboard of
// every sendMessage call.
func telegramStub(t *testing.T) (*httptest.Server, *[]models.InlineKeyboardMarkup) {
	t.Helper()
	var mu sync.Mutex
	markups := &[]models.InlineKeyboardMarkup{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			w.Write([]byte(`{"ok":true,"result":true}`))
			return
		}

		require.NoError(t, r.ParseMultipartForm(1<<20))
		if raw := r.FormValue("reply_markup"); raw != "" {
			var kb models.InlineKeyboardMarkup
			require.NoError(t, json.Unmarshal([]byte(raw), &kb))
			mu.Lock()
			*markups = append(*markups, kb)
			mu.Unlock()
		}
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"chat":{"id":42,"type":"private"}}}`))
	}))
	t.Cleanup(srv.Close)
	return srv, markups
}

func TestRouteDegradesToStartWhenResolveFails(t *testing.T) {
	srv, markups := telegramStub(t)

	b, err := bot.New("TEST",
		bot.WithServerURL(srv.URL),
		bot.WithSkipGetMe(),
	)
	require.NoError(t, err)

	store := &brokenStore{}
	h := &callbacktypes.Handler{
		History: store,
		Logger:  zap.NewNop(),
		Now:     time.Now,
	}

	callback := &models.CallbackQuery{
		ID:   "1",
		From: models.User{ID: 42},
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 1, Chat: models.Chat{ID: 42}},
		},
		Data: token.Booking,
	}

	Route(context.Background(), b, callback, h)

	// The menu still renders; its navigation row degrades to the single
	// Start anchor because no Back target could be resolved.
	require.Len(t, *markups, 1)
	rows := (*markups)[0].InlineKeyboard
	require.NotEmpty(t, rows)

	nav := rows[len(rows)-1]
	require.Len(t, nav, 1)
	assert.Equal(t, token.Start, nav[0].CallbackData)

	// The tapped menu was recorded before the resolve attempt, so history
	// stays consistent once the store recovers.
	assert.Equal(t, []string{token.Booking}, store.recorded)
}
