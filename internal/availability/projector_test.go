package availability

import (
	"testing"
	"time"

	"github.com/nusfitness/fitness-bot/internal/model"
)

var (
	// Thursday and the following Sunday.
	weekday = time.Date(2021, time.July, 8, 0, 0, 0, 0, time.Local)
	sunday  = time.Date(2021, time.July, 11, 0, 0, 0, 0, time.Local)
)

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func TestProjectUsesWeekdayHourList(t *testing.T) {
	f := model.FacilityByName("Kent Ridge Gym")
	now := at(weekday, 8, 0)

	states := Project(f, weekday, nil, nil, now)
	if len(states) != len(f.WeekdayHours) {
		t.Fatalf("got %d states, want %d", len(states), len(f.WeekdayHours))
	}
	for i, s := range states {
		if s.Slot.Hour != f.WeekdayHours[i] {
			t.Errorf("state %d hour = %q, want %q", i, s.Slot.Hour, f.WeekdayHours[i])
		}
	}
}

func TestProjectWeekendList(t *testing.T) {
	// University Town Gym opens all 15 hours on weekends; Kent Ridge Gym is
	// closed.
	utown := model.FacilityByName("University Town Gym")
	states := Project(utown, sunday, nil, nil, at(sunday, 8, 0))
	if len(states) != 15 {
		t.Errorf("University Town Gym on Sunday: got %d states, want 15", len(states))
	}

	krGym := model.FacilityByName("Kent Ridge Gym")
	states = Project(krGym, sunday, nil, nil, at(sunday, 8, 0))
	if len(states) != 0 {
		t.Errorf("Kent Ridge Gym on Sunday: got %d states, want 0", len(states))
	}
}

func TestProjectFullSlotStaysSelectable(t *testing.T) {
	f := model.FacilityByName("Kent Ridge Gym")
	slotAt1100 := at(weekday, 11, 0)
	occupancy := map[int64]int{slotAt1100.Unix(): 40}
	now := at(weekday, 10, 30)

	states := Project(f, weekday, occupancy, nil, now)

	var found *model.SlotState
	for i := range states {
		if states[i].Slot.Hour == "1100" {
			found = &states[i]
			break
		}
	}
	if found == nil {
		t.Fatal("no state for 1100")
	}
	if found.RemainingCapacity != 0 {
		t.Errorf("RemainingCapacity = %d, want 0", found.RemainingCapacity)
	}
	if found.IsBookedByUser {
		t.Error("IsBookedByUser = true, want false")
	}
	if found.IsDisabled() {
		t.Error("full future slot must stay selectable")
	}

	buttons, err := Buttons(states)
	if err != nil {
		t.Fatalf("Buttons error: %v", err)
	}
	for _, b := range buttons {
		if b.Text == "1100 (0 slots)" {
			return
		}
	}
	t.Errorf("no button with text %q", "1100 (0 slots)")
}

func TestProjectNegativeCapacityRenders(t *testing.T) {
	f := model.FacilityByName("Wellness Outreach Gym")
	slot := at(weekday, 7, 0)
	occupancy := map[int64]int{slot.Unix(): 23}

	states := Project(f, weekday, occupancy, nil, at(weekday, 6, 0))
	if states[0].RemainingCapacity != -3 {
		t.Fatalf("RemainingCapacity = %d, want -3", states[0].RemainingCapacity)
	}

	buttons, err := Buttons(states)
	if err != nil {
		t.Fatalf("Buttons error: %v", err)
	}
	if buttons[0].Text != "0700 (-3 slots)" {
		t.Errorf("button text = %q, want %q", buttons[0].Text, "0700 (-3 slots)")
	}
}

func TestProjectDisabledBoundary(t *testing.T) {
	f := model.FacilityByName("Kent Ridge Gym")
	slot := at(weekday, 11, 0)

	tests := []struct {
		name     string
		now      time.Time
		disabled bool
	}{
		{"one_minute_before_end", slot.Add(59 * time.Minute), false},
		{"exactly_at_end", slot.Add(time.Hour), true},
		{"after_end", slot.Add(2 * time.Hour), true},
		{"before_start", slot.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states := Project(f, weekday, nil, nil, tt.now)
			for _, s := range states {
				if s.Slot.Hour != "1100" {
					continue
				}
				if s.IsDisabled() != tt.disabled {
					t.Errorf("IsDisabled = %v, want %v", s.IsDisabled(), tt.disabled)
				}
				return
			}
			t.Fatal("no state for 1100")
		})
	}
}

func TestProjectBookedFlag(t *testing.T) {
	f := model.FacilityByName("University Town Gym")
	slot := at(weekday, 9, 0)
	bookings := map[int64]bool{slot.Unix(): true}

	states := Project(f, weekday, nil, bookings, at(weekday, 8, 0))
	buttons, err := Buttons(states)
	if err != nil {
		t.Fatalf("Buttons error: %v", err)
	}
	for i, s := range states {
		if s.Slot.Hour != "0900" {
			continue
		}
		if !s.IsBookedByUser {
			t.Error("IsBookedByUser = false, want true")
		}
		if buttons[i].Text != "✅0900 (40 slots)" {
			t.Errorf("button text = %q, want %q", buttons[i].Text, "✅0900 (40 slots)")
		}
		return
	}
	t.Fatal("no state for 0900")
}

func TestButtonsIdempotent(t *testing.T) {
	f := model.FacilityByName("University Sports Centre Gym")
	occupancy := map[int64]int{at(weekday, 12, 0).Unix(): 7}
	now := at(weekday, 10, 0)

	first, err := Buttons(Project(f, weekday, occupancy, nil, now))
	if err != nil {
		t.Fatalf("Buttons error: %v", err)
	}
	second, err := Buttons(Project(f, weekday, occupancy, nil, now))
	if err != nil {
		t.Fatalf("Buttons error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("button %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestPairRows(t *testing.T) {
	buttons := []Button{
		{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"},
	}
	rows := PairRows(buttons)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 2 || len(rows[2]) != 1 {
		t.Errorf("row sizes = %d,%d,%d, want 2,2,1", len(rows[0]), len(rows[1]), len(rows[2]))
	}
	if rows[2][0].Text != "e" {
		t.Errorf("last button = %q, want e", rows[2][0].Text)
	}
}
