// Package token implements the callback token grammar shared by every menu
// screen. A token is simultaneously the callback routing key and, for slot
// buttons, the basis of the human-readable caption:
//
//	<flags><facility>_<date>_<hour>[_<action>]
//
// Flag characters are prepended with no separator. Facility names may contain
// spaces but never an underscore; the date token is the fixed-width
// "Mon Jan 02 2006" form and the hour token is 4-digit HHMM, so the grammar
// stays unambiguous under field splitting.
package token

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the date field format inside composite tokens
// (e.g. "Thu Jul 08 2021").
const DateLayout = "Mon Jan 02 2006"

// MaxTokenBytes is the callback data budget imposed by the chat transport.
// The short date/hour formats and single-character flags exist to fit it.
const MaxTokenBytes = 64

// Wire encoding of the status flags. Kept confined to this package; the
// rest of the code works with the Flags struct.
const (
	FlagDisabledChar = "❌"
	FlagBookedChar   = "✅"
)

// Reserved top-level menu tokens, disjoint from the composite grammar.
const (
	Start          = "Start"
	Booking        = "Booking"
	BookedSlots    = "BookedSlots"
	MakeAndCancel  = "MakeAndCancel"
	Dashboard      = "Dashboard"
	CurrentTraffic = "CurrentTraffic"
	Charts         = "Charts"
	Cancel         = "Cancel"
)

// ReservedWords lists every reserved top-level token.
var ReservedWords = []string{
	Start, Booking, BookedSlots, MakeAndCancel,
	Dashboard, CurrentTraffic, Charts, Cancel,
}

// Action is the suffix distinguishing confirmation sub-flows from the bare
// slot-selection token.
type Action string

const (
	ActionNone   Action = ""
	ActionBook   Action = "Book"
	ActionCancel Action = "Cancel"
	ActionChart  Action = "Chart"
)

// Kind discriminates the decoded route variants.
type Kind int

const (
	KindReserved     Kind = iota // Start, Booking, Dashboard, ...
	KindFacility                 // "Kent Ridge Gym"
	KindFacilityDate             // "Kent Ridge Gym_Thu Jul 08 2021"
	KindSlot                     // "[flags]Kent Ridge Gym_Thu Jul 08 2021_1100"
	KindConfirm                  // slot + "_Book" or "_Cancel"
	KindChart                    // "Kent Ridge Gym_Chart"
)

// Flags carries the slot status markers encoded in front of the facility
// name. Wire order is disabled first, then booked.
type Flags struct {
	Disabled bool
	Booked   bool
}

func (f Flags) wire() string {
	var sb strings.Builder
	if f.Disabled {
		sb.WriteString(FlagDisabledChar)
	}
	if f.Booked {
		sb.WriteString(FlagBookedChar)
	}
	return sb.String()
}

// Route is a decoded token. Only the fields implied by Kind are set.
type Route struct {
	Kind     Kind
	Reserved string // KindReserved
	Facility string
	Date     time.Time // KindFacilityDate, KindSlot, KindConfirm
	Hour     string    // "HHMM"
	Flags    Flags
	Action   Action // KindConfirm, KindChart
}

var (
	facilityPattern = regexp.MustCompile(`^[A-Za-z ]+$`)
	hourPattern     = regexp.MustCompile(`^\d{4}$`)
	datePattern     = regexp.MustCompile(`^\w{3}\s\w{3}\s\d{2}\s\d{4}$`)
)

// ValidateFacilityName enforces the grammar's hard constraint on facility
// reference data. Called once at startup, not per encode.
func ValidateFacilityName(name string) error {
	if !facilityPattern.MatchString(name) {
		return fmt.Errorf("facility name %q violates token grammar", name)
	}
	return nil
}

// EncodeFacility renders a facility-selection token.
func EncodeFacility(facility string) string {
	return facility
}

// EncodeFacilityDate renders a date-selection token for a facility.
func EncodeFacilityDate(facility string, date time.Time) string {
	return facility + "_" + date.Format(DateLayout)
}

// EncodeChart renders a chart-view token for a facility.
func EncodeChart(facility string) string {
	return facility + "_" + string(ActionChart)
}

// EncodeSlotButton renders a slot-selection token. The facility name and
// hour are validated because a malformed facility would corrupt routing for
// every user; date formatting cannot fail.
func EncodeSlotButton(flags Flags, facility string, date time.Time, hour string) (string, error) {
	if strings.Contains(facility, "_") {
		return "", fmt.Errorf("facility name %q contains underscore", facility)
	}
	if !hourPattern.MatchString(hour) {
		return "", fmt.Errorf("hour token %q is not HHMM", hour)
	}
	tok := flags.wire() + facility + "_" + date.Format(DateLayout) + "_" + hour
	if len(tok) > MaxTokenBytes {
		return "", fmt.Errorf("token %q exceeds %d byte budget", tok, MaxTokenBytes)
	}
	return tok, nil
}

// WithAction appends a confirmation action suffix to a slot token.
func WithAction(slotToken string, action Action) string {
	return slotToken + "_" + string(action)
}

// Encode renders a Route back to its wire token.
func (r Route) Encode() (string, error) {
	switch r.Kind {
	case KindReserved:
		return r.Reserved, nil
	case KindFacility:
		return EncodeFacility(r.Facility), nil
	case KindFacilityDate:
		return EncodeFacilityDate(r.Facility, r.Date), nil
	case KindChart:
		return EncodeChart(r.Facility), nil
	case KindSlot:
		return EncodeSlotButton(r.Flags, r.Facility, r.Date, r.Hour)
	case KindConfirm:
		tok, err := EncodeSlotButton(r.Flags, r.Facility, r.Date, r.Hour)
		if err != nil {
			return "", err
		}
		return WithAction(tok, r.Action), nil
	default:
		return "", fmt.Errorf("unknown route kind %d", r.Kind)
	}
}

// SlotTime combines the route's date and hour into the exact slot timestamp
// (seconds zeroed) in the date's location.
func (r Route) SlotTime() time.Time {
	h := int(r.Hour[0]-'0')*10 + int(r.Hour[1]-'0')
	m := int(r.Hour[2]-'0')*10 + int(r.Hour[3]-'0')
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), h, m, 0, 0, r.Date.Location())
}

// stripFlags removes the leading flag markers, if any.
func stripFlags(data string) (Flags, string) {
	var f Flags
	if strings.HasPrefix(data, FlagDisabledChar) {
		f.Disabled = true
		data = strings.TrimPrefix(data, FlagDisabledChar)
	}
	if strings.HasPrefix(data, FlagBookedChar) {
		f.Booked = true
		data = strings.TrimPrefix(data, FlagBookedChar)
	}
	return f, data
}

// Decode parses a wire token into a Route. Matching goes from the most
// specific shape to the least specific one; the first successful match wins.
// Every token the router sees was produced by this package, so a decode
// failure is a programming error, not user input to be tolerated.
func Decode(data string) (Route, error) {
	flags, rest := stripFlags(data)

	if flags == (Flags{}) {
		for _, w := range ReservedWords {
			if rest == w {
				return Route{Kind: KindReserved, Reserved: w}, nil
			}
		}
	}

	fields := strings.Split(rest, "_")
	switch len(fields) {
	case 4:
		if fields[3] != string(ActionBook) && fields[3] != string(ActionCancel) {
			break
		}
		r, err := decodeSlotFields(fields[0], fields[1], fields[2])
		if err != nil {
			break
		}
		r.Kind = KindConfirm
		r.Flags = flags
		r.Action = Action(fields[3])
		return r, nil
	case 3:
		r, err := decodeSlotFields(fields[0], fields[1], fields[2])
		if err != nil {
			break
		}
		r.Flags = flags
		return r, nil
	case 2:
		if !facilityPattern.MatchString(fields[0]) {
			break
		}
		if fields[1] == string(ActionChart) {
			return Route{Kind: KindChart, Facility: fields[0], Action: ActionChart}, nil
		}
		if datePattern.MatchString(fields[1]) {
			date, err := time.ParseInLocation(DateLayout, fields[1], time.Local)
			if err != nil {
				break
			}
			return Route{Kind: KindFacilityDate, Facility: fields[0], Date: date}, nil
		}
	case 1:
		if facilityPattern.MatchString(fields[0]) {
			return Route{Kind: KindFacility, Facility: fields[0]}, nil
		}
	}
	return Route{}, fmt.Errorf("token %q matches no known shape", data)
}

func decodeSlotFields(facility, date, hour string) (Route, error) {
	if !facilityPattern.MatchString(facility) {
		return Route{}, fmt.Errorf("invalid facility field %q", facility)
	}
	if !datePattern.MatchString(date) || !hourPattern.MatchString(hour) {
		return Route{}, fmt.Errorf("invalid slot fields %q %q", date, hour)
	}
	parsed, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return Route{}, fmt.Errorf("parse date field: %w", err)
	}
	return Route{Kind: KindSlot, Facility: facility, Date: parsed, Hour: hour}, nil
}

// HasDisabledFlag reports whether the raw token carries the disabled marker
// anywhere. The router's disabled-tap rule matches on this before any shape
// decoding.
func HasDisabledFlag(data string) bool {
	return strings.Contains(data, FlagDisabledChar)
}
