package model

import "time"

// Slot is a single bookable hour at a facility. It is derived per request
// and never persisted; identity is the (facility, date, hour) triple.
type Slot struct {
	Facility string
	Start    time.Time // date at HH:MM, seconds zeroed
	Hour     string    // "HHMM"
}

// SlotState is the computed view of a slot for one requesting user at one
// instant. RemainingCapacity may be negative (over capacity at the backend);
// that still renders as-is and does not disable the button.
type SlotState struct {
	Slot              Slot
	RemainingCapacity int
	IsBookedByUser    bool
	IsPast            bool
}

// IsDisabled reports whether the slot can no longer be selected. Only
// elapsed slots are disabled; full slots stay selectable because the
// backend is authoritative on overbooking.
func (s SlotState) IsDisabled() bool {
	return s.IsPast
}

// Booking is a reservation as reported by the backend.
type Booking struct {
	Facility string    `json:"facility"`
	Date     time.Time `json:"date"`
}
