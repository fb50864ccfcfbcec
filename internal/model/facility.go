package model

// Facility is static reference data for a bookable NUS fitness facility.
// Hour lists are ordered "HHMM" strings; an empty weekend list means the
// facility is closed on weekends. Facility names are part of the callback
// token grammar and must never contain an underscore.
type Facility struct {
	Name         string
	WeekdayHours []string
	WeekendHours []string
	MaxCapacity  int
}

// HoursFor returns the hour list that applies to the given day of week.
func (f *Facility) HoursFor(weekend bool) []string {
	if weekend {
		return f.WeekendHours
	}
	return f.WeekdayHours
}

// Facilities is the process-wide facility table, loaded once and never
// mutated afterwards. Order matters: the currentTraffic backend endpoint
// returns one count per facility in exactly this order.
var Facilities = []Facility{
	{
		Name: "Kent Ridge Swimming Pool",
		WeekdayHours: []string{
			"0730", "0900", "1000", "1100", "1200", "1300", "1400",
			"1500", "1600", "1700", "1800", "1900", "2000",
		},
		WeekendHours: []string{
			"0900", "1000", "1100", "1200", "1300", "1400", "1500",
			"1600", "1700", "1800",
		},
		MaxCapacity: 40,
	},
	{
		Name: "University Town Swimming Pool",
		WeekdayHours: []string{
			"0730", "0900", "1000", "1100", "1200", "1300", "1400",
			"1500", "1600", "1700", "1800", "1900", "2000",
		},
		WeekendHours: []string{
			"0900", "1000", "1100", "1200", "1300", "1400", "1500",
			"1600", "1700", "1800",
		},
		MaxCapacity: 40,
	},
	{
		Name: "Kent Ridge Gym",
		WeekdayHours: []string{
			"1100", "1200", "1300", "1400", "1500", "1600", "1700",
			"1800", "1900",
		},
		WeekendHours: []string{},
		MaxCapacity:  40,
	},
	{
		Name: "University Sports Centre Gym",
		WeekdayHours: []string{
			"0900", "1000", "1100", "1200", "1300", "1400", "1500",
			"1600", "1700", "1800", "1900", "2000",
		},
		WeekendHours: []string{
			"0900", "1000", "1100", "1200", "1300", "1400", "1500",
			"1600", "1700", "1800",
		},
		MaxCapacity: 40,
	},
	{
		Name: "University Town Gym",
		WeekdayHours: []string{
			"0700", "0800", "0900", "1000", "1100", "1200", "1300",
			"1400", "1500", "1600", "1700", "1800", "1900", "2000",
			"2100",
		},
		WeekendHours: []string{
			"0700", "0800", "0900", "1000", "1100", "1200", "1300",
			"1400", "1500", "1600", "1700", "1800", "1900", "2000",
			"2100",
		},
		MaxCapacity: 40,
	},
	{
		Name: "Wellness Outreach Gym",
		WeekdayHours: []string{
			"0700", "0800", "0900", "1000", "1100", "1200", "1300",
			"1400", "1500", "1600", "1700", "1800", "1900", "2000",
			"2100",
		},
		WeekendHours: []string{},
		MaxCapacity:  20,
	},
}

// FacilityByName finds a facility in the reference table.
// Returns nil if the name is unknown.
func FacilityByName(name string) *Facility {
	for i := range Facilities {
		if Facilities[i].Name == name {
			return &Facilities[i]
		}
	}
	return nil
}
