package scheduling

import (
	"fmt"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// IsBookable applies the per-availability eligibility rules to a desired start
// instant. Checks run in strict order and the first failure wins, so callers
// always see the most fundamental violated rule: publication status, then the
// notice/advance window, then the active date range. A nil return means the
// request clears policy.
func IsBookable(av *models.Availability, now, desiredStart time.Time) error {
	if av.Status != models.AvailabilityAvailable {
		return &PolicyViolation{
			Reason:  ReasonStatus,
			Message: fmt.Sprintf("availability is %s", av.Status),
		}
	}

	earliest := now.Add(time.Duration(av.MinNoticeHours) * time.Hour)
	if desiredStart.Before(earliest) {
		return &PolicyViolation{
			Reason:  ReasonNotice,
			Message: fmt.Sprintf("bookings require %d hours notice", av.MinNoticeHours),
		}
	}

	latest := now.AddDate(0, 0, av.MaxAdvanceDays)
	if av.MaxAdvanceDays > 0 && desiredStart.After(latest) {
		return &PolicyViolation{
			Reason:  ReasonAdvance,
			Message: fmt.Sprintf("bookings may be made at most %d days in advance", av.MaxAdvanceDays),
		}
	}

	if err := withinActiveRange(av, desiredStart); err != nil {
		return err
	}
	return nil
}

// withinActiveRange checks the desired start against the availability's active
// date range, evaluated as whole days in the availability's own zone.
func withinActiveRange(av *models.Availability, desiredStart time.Time) error {
	loc, err := time.LoadLocation(av.TimeZone)
	if err != nil {
		return &InvalidTimeZoneError{Zone: av.TimeZone}
	}
	local := desiredStart.In(loc)

	if !av.StartDate.IsZero() {
		s := av.StartDate.In(loc)
		rangeStart := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
		if local.Before(rangeStart) {
			return &PolicyViolation{
				Reason:  ReasonWindow,
				Message: fmt.Sprintf("availability does not open until %s", rangeStart.Format("2006-01-02")),
			}
		}
	}
	if !av.EndDate.IsZero() {
		e := av.EndDate.In(loc)
		// End date is inclusive, so the range closes at the following midnight.
		rangeEnd := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		if !local.Before(rangeEnd) {
			return &PolicyViolation{
				Reason:  ReasonWindow,
				Message: fmt.Sprintf("availability closed on %s", e.Format("2006-01-02")),
			}
		}
	}
	return nil
}
