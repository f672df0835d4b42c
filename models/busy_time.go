package models

import "time"

// TimeRange is a blocked interval during which the provider is unavailable.
type TimeRange struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Contains reports whether t falls inside [Start, End).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// BusyTimesRequest is the body of POST /api/bookings/busyTimes.
type BusyTimesRequest struct {
	CustomerLocation       string   `json:"customerLocation"`
	ExpectedTimeToComplete int      `json:"expectedTimeToComplete"` // minutes
	ServiceNames           []string `json:"serviceNames"`
}
