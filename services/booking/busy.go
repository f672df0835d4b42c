package booking

import (
	"sort"
	"strings"
	"time"

	"detailing/models"
)

// BusyParams controls how existing bookings are turned into busy intervals.
type BusyParams struct {
	// Duration is the length of the job being scheduled.
	Duration time.Duration
	// CustomerLocation is compared against each booking's location.
	CustomerLocation string
	// TravelBuffer pads bookings at a different location on both sides.
	TravelBuffer time.Duration
}

// ComputeBusyTimes returns the sorted, merged intervals in which a job of
// params.Duration cannot start without overlapping an existing booking.
//
// A job starting at t overlaps booking [s, e) iff t is in (s-d, e), so each
// booking blocks [s-d-buffer, e+buffer).
func ComputeBusyTimes(bookings []models.Booking, params BusyParams) []models.TimeRange {
	ranges := make([]models.TimeRange, 0, len(bookings))
	for _, b := range bookings {
		if !b.End.After(b.Start) {
			continue
		}
		buffer := time.Duration(0)
		if !sameLocation(b.CustomerLocation, params.CustomerLocation) {
			buffer = params.TravelBuffer
		}
		ranges = append(ranges, models.TimeRange{
			Start: b.Start.Add(-params.Duration - buffer).UTC(),
			End:   b.End.Add(buffer).UTC(),
		})
	}
	return MergeRanges(ranges)
}

// MergeRanges sorts ranges by start and coalesces overlapping or touching ones.
func MergeRanges(ranges []models.TimeRange) []models.TimeRange {
	if len(ranges) == 0 {
		return []models.TimeRange{}
	}
	sorted := append([]models.TimeRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	merged := []models.TimeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !r.Start.After(last.End) {
			if r.End.After(last.End) {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func sameLocation(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
