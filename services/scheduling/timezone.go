package scheduling

import (
	"sort"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// DailyWindow is a recurring time-of-day band, e.g. 09:00-17:00, anchored to a
// specific IANA zone. Start and End use "HH:MM" 24-hour format.
type DailyWindow struct {
	Start string
	End   string
	Zone  string
}

// ConvertToZone re-expresses an instant in toZone. The instant itself never
// changes, so converting there and back yields the identical time.
func ConvertToZone(t time.Time, fromZone, toZone string) (time.Time, error) {
	if _, err := time.LoadLocation(fromZone); err != nil {
		return time.Time{}, &InvalidTimeZoneError{Zone: fromZone}
	}
	loc, err := time.LoadLocation(toZone)
	if err != nil {
		return time.Time{}, &InvalidTimeZoneError{Zone: toZone}
	}
	return t.In(loc), nil
}

// ValidateZone checks that zone is a well-formed IANA identifier.
func ValidateZone(zone string) error {
	if _, err := time.LoadLocation(zone); err != nil {
		return &InvalidTimeZoneError{Zone: zone}
	}
	return nil
}

// Overlap reports whether two half-open intervals intersect. Ranges that
// merely touch at a boundary do not overlap.
func Overlap(a, b models.TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// DurationMinutes returns the whole minutes between start and end.
func DurationMinutes(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, &InvalidRangeError{Message: "end must be after start"}
	}
	return int(end.Sub(start) / time.Minute), nil
}

// parseClock parses an "HH:MM" string into hour and minute components.
func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, &ValidationError{Field: "time", Message: "expected HH:MM, got " + s}
	}
	return t.Hour(), t.Minute(), nil
}

// EnumerateFreeSlots walks [windowStart, windowEnd) day by day and returns
// every non-overlapping window of exactly durationMinutes that fits inside the
// daily band and avoids all busy ranges. The result is ordered by start time
// and finite; callers may range over it as many times as they like.
func EnumerateFreeSlots(windowStart, windowEnd time.Time, durationMinutes int, busy []models.TimeRange, daily DailyWindow) ([]models.TimeRange, error) {
	if durationMinutes <= 0 {
		return nil, &ValidationError{Field: "durationMinutes", Message: "must be positive"}
	}
	if !windowEnd.After(windowStart) {
		return nil, &InvalidRangeError{Message: "window end must be after window start"}
	}
	loc, err := time.LoadLocation(daily.Zone)
	if err != nil {
		return nil, &InvalidTimeZoneError{Zone: daily.Zone}
	}
	startHour, startMin, err := parseClock(daily.Start)
	if err != nil {
		return nil, err
	}
	endHour, endMin, err := parseClock(daily.End)
	if err != nil {
		return nil, err
	}

	// Work on a sorted copy so caller ordering never matters.
	sorted := make([]models.TimeRange, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	dur := time.Duration(durationMinutes) * time.Minute
	var slots []models.TimeRange

	// Iterate whole calendar days at local midnight so the window's clock
	// times never decide which days are visited.
	localStart := windowStart.In(loc)
	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	for {
		bandStart := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, loc)
		if !bandStart.Before(windowEnd) {
			break
		}
		bandEnd := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, loc)

		cursor := bandStart
		if cursor.Before(windowStart) {
			cursor = windowStart.In(loc)
		}
		for {
			end := cursor.Add(dur)
			if end.After(bandEnd) || end.After(windowEnd) {
				break
			}
			candidate := models.TimeRange{Start: cursor, End: end}
			if blocked, until := firstOverlap(candidate, sorted); blocked {
				// Jump past the blocking range instead of sliding minute by minute.
				cursor = until.In(loc)
				continue
			}
			slots = append(slots, candidate)
			cursor = end
		}

		day = day.AddDate(0, 0, 1)
	}

	return slots, nil
}

// firstOverlap returns whether candidate collides with any busy range and, if
// so, the end of the earliest-ending collision to resume from.
func firstOverlap(candidate models.TimeRange, sorted []models.TimeRange) (bool, time.Time) {
	for _, b := range sorted {
		if !b.End.After(b.Start) {
			continue
		}
		if Overlap(candidate, b) {
			return true, b.End
		}
	}
	return false, time.Time{}
}
