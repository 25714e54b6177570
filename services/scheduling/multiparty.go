package scheduling

import (
	"context"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// Default business-hours band used to generate reference candidates for
// multi-party searches, expressed in the request's output zone.
const (
	defaultBandStart = "09:00"
	defaultBandEnd   = "17:00"
)

// maxCommonSlots caps the candidates a multi-party search returns.
const maxCommonSlots = 10

// FindCommonSlots discovers shared free windows across every participant's
// availability. Phase one is cheap: union all busy ranges and enumerate
// reference candidates over a business-hours band in the output zone. Phase
// two re-validates each surviving candidate through the ordinary single-slot
// check in each participant's own zone, so nothing the union missed (policy,
// daily windows, capacity) slips through.
func (e *DefaultEngine) FindCommonSlots(ctx context.Context, req CommonSlotRequest) ([]models.CandidateSlot, error) {
	if len(req.AvailabilityIDs) == 0 {
		return nil, &ValidationError{Field: "availabilityIds", Message: "at least one participant required"}
	}
	if req.DurationMinutes <= 0 {
		return nil, &ValidationError{Field: "durationMinutes", Message: "must be positive"}
	}
	if err := ValidateZone(req.OutputTimeZone); err != nil {
		return nil, err
	}
	if !req.LatestEnd.After(req.EarliestStart) {
		return nil, &InvalidRangeError{Message: "latestEnd must be after earliestStart"}
	}

	participants, err := e.AvailabilityRepo.GetByIDs(ctx, req.AvailabilityIDs)
	if err != nil {
		return nil, err
	}

	searchWindow := models.TimeRange{Start: req.EarliestStart, End: req.LatestEnd}
	var busy []models.TimeRange
	for _, av := range participants {
		bookings, err := e.BookingRepo.ListActiveBookings(ctx, av.ID, searchWindow)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			busy = append(busy, models.TimeRange{Start: b.StartTime, End: b.EndTime})
		}
	}

	band := DailyWindow{Start: defaultBandStart, End: defaultBandEnd, Zone: req.OutputTimeZone}
	candidates, err := EnumerateFreeSlots(req.EarliestStart, req.LatestEnd, req.DurationMinutes, busy, band)
	if err != nil {
		return nil, err
	}

	var slots []models.CandidateSlot
	for _, candidate := range candidates {
		if len(slots) == maxCommonSlots {
			break
		}
		if e.slotWorksForAll(ctx, participants, candidate) {
			start, err := ConvertToZone(candidate.Start, "UTC", req.OutputTimeZone)
			if err != nil {
				return nil, err
			}
			end, err := ConvertToZone(candidate.End, "UTC", req.OutputTimeZone)
			if err != nil {
				return nil, err
			}
			slots = append(slots, models.CandidateSlot{
				Start:        start,
				End:          end,
				TimeZone:     req.OutputTimeZone,
				Participants: req.AvailabilityIDs,
			})
		}
	}
	return slots, nil
}

// slotWorksForAll re-validates a candidate against every participant in that
// participant's own zone.
func (e *DefaultEngine) slotWorksForAll(ctx context.Context, participants []models.Availability, candidate models.TimeRange) bool {
	for _, av := range participants {
		result, err := e.CheckSlotAvailability(ctx, av.ID, candidate.Start, candidate.End, av.TimeZone)
		if err != nil || !result.Available {
			return false
		}
	}
	return true
}
