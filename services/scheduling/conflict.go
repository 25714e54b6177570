package scheduling

import (
	"context"
	"errors"
	"time"

	availabilityRepo "github.com/EAniwa/legacylancers-sub004/database/repository/availability"
	"github.com/EAniwa/legacylancers-sub004/models"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"go.uber.org/zap"
)

// suggestionSearchDays bounds the alternative-slot search window.
const suggestionSearchDays = 7

// maxSuggestedTimes caps the alternates returned on a daily-window miss.
const maxSuggestedTimes = 5

// CheckSlotAvailability decides whether a desired slot can be booked on an
// availability. Checks run strictly in order and short-circuit on the first
// failure: zone validation, policy, daily-window containment, the overlap scan
// against existing bookings, and capacity last. Rule failures come back inside
// the result; only malformed input or repository trouble surfaces as an error.
func (e *DefaultEngine) CheckSlotAvailability(ctx context.Context, availabilityID string, desiredStart, desiredEnd time.Time, requestTimeZone string) (*models.SlotCheckResult, error) {
	if err := ValidateZone(requestTimeZone); err != nil {
		return nil, err
	}
	if _, err := DurationMinutes(desiredStart, desiredEnd); err != nil {
		return nil, err
	}

	av, err := e.AvailabilityRepo.GetByID(ctx, availabilityID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrNotFound) {
			return nil, &NotFoundError{Kind: "availability", ID: availabilityID}
		}
		return nil, err
	}

	if err := IsBookable(av, e.now(), desiredStart); err != nil {
		var pv *PolicyViolation
		if errors.As(err, &pv) {
			return &models.SlotCheckResult{Available: false, Reason: pv.Reason}, nil
		}
		return nil, err
	}

	inside, err := withinDailyWindow(av, desiredStart, desiredEnd)
	if err != nil {
		return nil, err
	}
	if !inside {
		return &models.SlotCheckResult{
			Available:      false,
			Reason:         ReasonOutsideHours,
			SuggestedTimes: e.suggestAlternates(ctx, av, desiredStart, desiredEnd, requestTimeZone),
		}, nil
	}

	window := models.TimeRange{Start: desiredStart, End: desiredEnd}
	conflicting, err := e.BookingRepo.ListActiveBookings(ctx, av.ID, window)
	if err != nil {
		return nil, err
	}
	if len(conflicting) > 0 {
		return &models.SlotCheckResult{
			Available:           false,
			Reason:              ReasonConflict,
			ConflictingBookings: conflicting,
		}, nil
	}

	active, err := e.BookingRepo.CountActive(ctx, av.ID)
	if err != nil {
		return nil, err
	}
	if av.MaxBookings > 0 && active >= av.MaxBookings {
		return &models.SlotCheckResult{Available: false, Reason: ReasonCapacity}, nil
	}

	return &models.SlotCheckResult{Available: true}, nil
}

// withinDailyWindow reports whether the desired range, expressed in the
// availability's own zone, fits inside its daily band without crossing
// midnight.
func withinDailyWindow(av *models.Availability, start, end time.Time) (bool, error) {
	loc, err := time.LoadLocation(av.TimeZone)
	if err != nil {
		return false, &InvalidTimeZoneError{Zone: av.TimeZone}
	}
	startHour, startMin, err := parseClock(av.DailyStartTime)
	if err != nil {
		return false, err
	}
	endHour, endMin, err := parseClock(av.DailyEndTime)
	if err != nil {
		return false, err
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	bandStart := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), startHour, startMin, 0, 0, loc)
	bandEnd := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), endHour, endMin, 0, 0, loc)

	return !localStart.Before(bandStart) && !localEnd.After(bandEnd), nil
}

// suggestAlternates searches the next seven days for free windows matching the
// requested length and returns up to five, expressed in the requester's zone.
// The search is advisory only: any internal failure degrades to an empty list
// rather than masking the check result that triggered it.
func (e *DefaultEngine) suggestAlternates(ctx context.Context, av *models.Availability, desiredStart, desiredEnd time.Time, requestTimeZone string) []models.CandidateSlot {
	logger := utils.GetLogger()

	durationMinutes, err := DurationMinutes(desiredStart, desiredEnd)
	if err != nil {
		return nil
	}

	now := e.now()
	searchStart := now.Add(time.Duration(av.MinNoticeHours) * time.Hour)
	searchEnd := now.AddDate(0, 0, suggestionSearchDays)
	if !searchEnd.After(searchStart) {
		return nil
	}

	busy, err := e.BookingRepo.ListActiveBookings(ctx, av.ID, models.TimeRange{Start: searchStart, End: searchEnd})
	if err != nil {
		logger.Warn("alternate-slot search: could not list bookings",
			zap.String("availabilityID", av.ID), zap.Error(err))
		return nil
	}

	busyRanges := make([]models.TimeRange, 0, len(busy))
	for _, b := range busy {
		busyRanges = append(busyRanges, models.TimeRange{Start: b.StartTime, End: b.EndTime})
	}

	daily := DailyWindow{Start: av.DailyStartTime, End: av.DailyEndTime, Zone: av.TimeZone}
	free, err := EnumerateFreeSlots(searchStart, searchEnd, durationMinutes, busyRanges, daily)
	if err != nil {
		logger.Warn("alternate-slot search: enumeration failed",
			zap.String("availabilityID", av.ID), zap.Error(err))
		return nil
	}

	var suggestions []models.CandidateSlot
	for _, slot := range free {
		if len(suggestions) == maxSuggestedTimes {
			break
		}
		start, err := ConvertToZone(slot.Start, av.TimeZone, requestTimeZone)
		if err != nil {
			return nil
		}
		end, err := ConvertToZone(slot.End, av.TimeZone, requestTimeZone)
		if err != nil {
			return nil
		}
		suggestions = append(suggestions, models.CandidateSlot{
			Start:        start,
			End:          end,
			TimeZone:     requestTimeZone,
			Participants: []string{av.ID},
		})
	}
	return suggestions
}
