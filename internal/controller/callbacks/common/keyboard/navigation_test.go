package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nusfitness/fitness-bot/internal/token"
)

func TestNavRowDualAnchor(t *testing.T) {
	row := NavRow("Booking")

	require.Len(t, row, 2)
	assert.Equal(t, "Booking", row[0].CallbackData)
	assert.Equal(t, token.Start, row[1].CallbackData)
}

func TestNavRowCollapsesToStartAnchor(t *testing.T) {
	// No usable Back target means a single absolute anchor, never a Back
	// button pointing at Start twice.
	for _, back := range []string{"", token.Start} {
		row := NavRow(back)
		require.Len(t, row, 1, "back=%q", back)
		assert.Equal(t, token.Start, row[0].CallbackData, "back=%q", back)
	}
}
