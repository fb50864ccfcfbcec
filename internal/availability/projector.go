// Package availability computes per-slot booking state for a facility on a
// given date and renders it into keyboard buttons.
package availability

import (
	"fmt"
	"time"

	"github.com/nusfitness/fitness-bot/internal/model"
	"github.com/nusfitness/fitness-bot/internal/token"
)

// slotDuration is the length of every bookable slot. A slot only becomes
// disabled once this whole duration has elapsed.
const slotDuration = time.Hour

// Button is one rendered slot button: caption plus callback token.
type Button struct {
	Text  string
	Token string
}

// Project computes one SlotState per canonical hour the facility offers on
// assignedDate. occupancy maps exact slot timestamps (Unix seconds) to
// occupied counts; userBookings holds the requesting user's existing slot
// timestamps. Remaining capacity is max capacity minus the count, with no
// floor: a negative value signals overbooking at the backend and still
// renders.
func Project(
	facility *model.Facility,
	assignedDate time.Time,
	occupancy map[int64]int,
	userBookings map[int64]bool,
	now time.Time,
) []model.SlotState {
	weekday := assignedDate.Weekday()
	hours := facility.HoursFor(weekday == time.Saturday || weekday == time.Sunday)

	states := make([]model.SlotState, 0, len(hours))
	for _, hour := range hours {
		start := slotStart(assignedDate, hour)
		states = append(states, model.SlotState{
			Slot: model.Slot{
				Facility: facility.Name,
				Start:    start,
				Hour:     hour,
			},
			RemainingCapacity: facility.MaxCapacity - occupancy[start.Unix()],
			IsBookedByUser:    userBookings[start.Unix()],
			IsPast:            !start.Add(slotDuration).After(now),
		})
	}
	return states
}

// Buttons renders slot states into (caption, token) buttons in hour-list
// order. Re-rendering with unchanged inputs yields byte-identical tokens.
func Buttons(states []model.SlotState) ([]Button, error) {
	buttons := make([]Button, 0, len(states))
	for _, s := range states {
		flags := token.Flags{Disabled: s.IsDisabled(), Booked: s.IsBookedByUser}
		tok, err := token.EncodeSlotButton(flags, s.Slot.Facility, s.Slot.Start, s.Slot.Hour)
		if err != nil {
			return nil, fmt.Errorf("encode slot button: %w", err)
		}
		text := ""
		if s.IsDisabled() {
			text += token.FlagDisabledChar
		}
		if s.IsBookedByUser {
			text += token.FlagBookedChar
		}
		text += fmt.Sprintf("%s (%d slots)", s.Slot.Hour, s.RemainingCapacity)
		buttons = append(buttons, Button{Text: text, Token: tok})
	}
	return buttons, nil
}

// PairRows lays buttons out two per row for the inline keyboard: every even
// index starts a new row.
func PairRows(buttons []Button) [][]Button {
	rows := make([][]Button, 0, (len(buttons)+1)/2)
	for i, b := range buttons {
		if i%2 == 0 {
			rows = append(rows, []Button{b})
		} else {
			rows[len(rows)-1] = append(rows[len(rows)-1], b)
		}
	}
	return rows
}

func slotStart(date time.Time, hour string) time.Time {
	h := int(hour[0]-'0')*10 + int(hour[1]-'0')
	m := int(hour[2]-'0')*10 + int(hour[3]-'0')
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}
