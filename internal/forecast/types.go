package forecast

import "time"

// MaxDays is the number of daily entries a forecast strip shows
const MaxDays = 5

// Sample represents weather conditions at a point in time
type Sample struct {
	Time        time.Time
	TempC       float64
	FeelsLikeC  float64
	Humidity    int     // percentage 0-100
	PressureHPa int     // hectopascal
	WindMps     float64 // meters per second
	ConditionID int     // provider condition code
	Description string
	Icon        string // provider icon code, e.g. "10d"
}

// Hour returns the local clock hour of the sample in loc
func (s Sample) Hour(loc *time.Location) int {
	return s.Time.In(location(loc)).Hour()
}

// date identifies a calendar day in a given location
type date struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time, loc *time.Location) date {
	y, m, d := t.In(location(loc)).Date()
	return date{year: y, month: m, day: d}
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
