// File path: internal/activity/activity.go
package activity

import (
	"strconv"
	"strings"
	"time"
)

// Activity is one recorded exercise session as reported by the remote
// tracking service. Numeric metrics are pointers because the service omits
// any metric the recording device did not capture.
type Activity struct {
	ID        string
	Name      string
	Type      string
	StartTime time.Time

	Distance           *float64 // metres
	Duration           *float64 // seconds
	AverageSpeed       *float64 // m/s
	MaxSpeed           *float64 // m/s
	AverageHR          *float64 // bpm
	MaxHR              *float64 // bpm
	AverageCadence     *float64 // steps/min
	ElevationGain      *float64 // metres
	AveragePower       *float64 // watts
	MaxPower           *float64 // watts
	AerobicEffect      *float64
	AnaerobicEffect    *float64
	BeginStamina       *float64 // percent
	EndStamina         *float64 // percent
	AverageTemperature *float64 // celsius
	Calories           *float64
}

// Date returns the civil date of the activity start, truncated in the start
// time's own location. Comparisons across activities use these civil dates
// directly, without timezone adjustment.
func (a Activity) Date() time.Time {
	y, m, d := a.StartTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.StartTime.Location())
}

// SameDate reports whether the activity started on the given civil date.
func (a Activity) SameDate(date time.Time) bool {
	y1, m1, d1 := a.StartTime.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// NormalizeID renders a remote activity identifier as the canonical string
// form used for keying. The remote service reports identifiers as either
// JSON numbers or strings depending on the endpoint.
func NormalizeID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if i := int64(f); float64(i) == f {
			return strconv.FormatInt(i, 10)
		}
	}
	return trimmed
}

// Float unwraps an optional metric, reporting whether it was present.
func Float(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Ptr returns a pointer to v. Convenience for building activities by hand.
func Ptr(v float64) *float64 {
	return &v
}

// PaceMinPerKm converts a speed in m/s into minutes per kilometre. Returns
// nil when speed is absent or non-positive.
func PaceMinPerKm(speed *float64) *float64 {
	if speed == nil || *speed <= 0 {
		return nil
	}
	pace := 1000.0 / (*speed * 60.0)
	return &pace
}
