package scheduling

import (
	"context"
	"errors"
	"time"

	availabilityRepo "github.com/EAniwa/legacylancers-sub004/database/repository/availability"
	bookingRepo "github.com/EAniwa/legacylancers-sub004/database/repository/booking"
	"github.com/EAniwa/legacylancers-sub004/models"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// newBookingRecord validates the request and assembles a pending booking.
func (e *DefaultEngine) newBookingRecord(req BookingRequest) (*models.Booking, error) {
	switch {
	case req.AvailabilityID == "":
		return nil, &ValidationError{Field: "availabilityId", Message: "required"}
	case req.BookedBy == "":
		return nil, &ValidationError{Field: "bookedBy", Message: "required"}
	case req.StartTime.IsZero():
		return nil, &ValidationError{Field: "startTime", Message: "required"}
	case req.EndTime.IsZero():
		return nil, &ValidationError{Field: "endTime", Message: "required"}
	}

	duration, err := DurationMinutes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	zone := req.TimeZone
	if zone == "" {
		zone = "UTC"
	}
	if err := ValidateZone(zone); err != nil {
		return nil, err
	}

	now := e.now()
	return &models.Booking{
		ID:              uuid.New().String(),
		AvailabilityID:  req.AvailabilityID,
		BookedBy:        req.BookedBy,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		TimeZone:        zone,
		DurationMinutes: duration,
		Notes:           req.Notes,
		AttendeeInfo:    req.AttendeeInfo,
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Book runs the full single-party path: slot check, then an atomic reserve at
// the repository so no concurrent request can double-book between the check
// and the write. The created record is returned in full, status pending.
func (e *DefaultEngine) Book(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	booking, err := e.newBookingRecord(req)
	if err != nil {
		return nil, err
	}

	result, err := e.CheckSlotAvailability(ctx, req.AvailabilityID, booking.StartTime, booking.EndTime, booking.TimeZone)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, checkResultError(result)
	}

	av, err := e.AvailabilityRepo.GetByID(ctx, req.AvailabilityID)
	if err != nil {
		return nil, err
	}
	if err := e.BookingRepo.Reserve(ctx, booking, av.MaxBookings); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, &ConflictError{Message: "slot was taken by a concurrent booking"}
		case errors.Is(err, bookingRepo.ErrCapacityExhausted):
			return nil, &PolicyViolation{Reason: ReasonCapacity, Message: "availability is fully booked"}
		}
		return nil, err
	}

	e.publish(ctx, booking, "")
	return booking, nil
}

// checkResultError converts a failed slot check into the matching typed error.
func checkResultError(result *models.SlotCheckResult) error {
	if result.Reason == ReasonConflict {
		return &ConflictError{
			Message:     "desired slot overlaps an existing booking",
			Conflicting: result.ConflictingBookings,
		}
	}
	return &PolicyViolation{Reason: result.Reason, Message: "slot is not bookable"}
}

// GetBooking fetches a booking by id.
func (e *DefaultEngine) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := e.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Kind: "booking", ID: id}
		}
		return nil, err
	}
	return booking, nil
}

// Confirm moves a pending booking to confirmed. Confirming anything else,
// including an already-confirmed booking, fails with InvalidTransition.
func (e *DefaultEngine) Confirm(ctx context.Context, id, confirmedBy string) (*models.Booking, error) {
	booking, err := e.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, &InvalidTransitionError{From: booking.Status, Op: "confirm"}
	}

	prev := booking.Status
	now := e.now()
	booking.Status = models.BookingConfirmed
	booking.ConfirmedAt = &now
	booking.ConfirmedBy = confirmedBy
	booking.UpdatedAt = now

	if err := e.BookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	e.publish(ctx, booking, prev, withActor(confirmedBy))
	return booking, nil
}

// Cancel moves a pending or confirmed booking to cancelled. The reason is
// stored verbatim; empty is permitted. Terminal bookings, cancelled ones
// included, fail with InvalidTransition rather than silently cancelling twice.
func (e *DefaultEngine) Cancel(ctx context.Context, id, cancelledBy, reason string) (*models.Booking, error) {
	booking, err := e.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.IsTerminal() {
		return nil, &InvalidTransitionError{From: booking.Status, Op: "cancel"}
	}

	prev := booking.Status
	now := e.now()
	booking.Status = models.BookingCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = cancelledBy
	booking.CancelReason = reason
	booking.UpdatedAt = now

	if err := e.BookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	e.publish(ctx, booking, prev, withActor(cancelledBy))
	return booking, nil
}

// Update applies a partial mutation to a non-terminal booking. Identity fields
// are untouchable by construction of BookingPatch. Moving the time range
// recomputes duration and re-runs the slot rules against the new range, so an
// update cannot relocate a booking onto an occupied or out-of-window slot.
func (e *DefaultEngine) Update(ctx context.Context, id string, patch BookingPatch) (*models.Booking, error) {
	booking, err := e.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.IsTerminal() {
		return nil, &InvalidTransitionError{From: booking.Status, Op: "update"}
	}

	start := booking.StartTime
	end := booking.EndTime
	if patch.StartTime != nil {
		start = patch.StartTime.UTC()
	}
	if patch.EndTime != nil {
		end = patch.EndTime.UTC()
	}
	if patch.StartTime != nil || patch.EndTime != nil {
		duration, err := DurationMinutes(start, end)
		if err != nil {
			return nil, err
		}
		if err := e.validateMove(ctx, booking, start, end); err != nil {
			return nil, err
		}
		booking.StartTime = start
		booking.EndTime = end
		booking.DurationMinutes = duration
	}
	if patch.TimeZone != nil {
		if err := ValidateZone(*patch.TimeZone); err != nil {
			return nil, err
		}
		booking.TimeZone = *patch.TimeZone
	}
	if patch.Notes != nil {
		booking.Notes = *patch.Notes
	}
	if patch.AttendeeInfo != nil {
		booking.AttendeeInfo = patch.AttendeeInfo
	}
	booking.UpdatedAt = e.now()

	if err := e.BookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	e.publish(ctx, booking, booking.Status)
	return booking, nil
}

// validateMove re-runs the slot rules for a booking being moved to a new
// range, ignoring the hold the booking itself still has on the old one.
// Capacity is untouched by a move, so only policy, the daily window, and the
// overlap scan apply.
func (e *DefaultEngine) validateMove(ctx context.Context, booking *models.Booking, start, end time.Time) error {
	av, err := e.AvailabilityRepo.GetByID(ctx, booking.AvailabilityID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrNotFound) {
			return &NotFoundError{Kind: "availability", ID: booking.AvailabilityID}
		}
		return err
	}
	if err := IsBookable(av, e.now(), start); err != nil {
		return err
	}

	inside, err := withinDailyWindow(av, start, end)
	if err != nil {
		return err
	}
	if !inside {
		return &PolicyViolation{Reason: ReasonOutsideHours, Message: "new range falls outside the daily window"}
	}

	others, err := e.BookingRepo.ListActiveBookings(ctx, booking.AvailabilityID, models.TimeRange{Start: start, End: end})
	if err != nil {
		return err
	}
	var conflicting []models.Booking
	for _, b := range others {
		if b.ID != booking.ID {
			conflicting = append(conflicting, b)
		}
	}
	if len(conflicting) > 0 {
		return &ConflictError{
			Message:     "new range overlaps an existing booking",
			Conflicting: conflicting,
		}
	}
	return nil
}

// CompleteDueBookings sweeps confirmed bookings whose end time has passed into
// completed and reports how many it moved. Driven by the background worker.
func (e *DefaultEngine) CompleteDueBookings(ctx context.Context, now time.Time) (int, error) {
	due, err := e.BookingRepo.ListDueCompletions(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range due {
		booking := due[i]
		prev := booking.Status
		booking.Status = models.BookingCompleted
		booking.CompletedAt = &now
		booking.UpdatedAt = now
		if err := e.BookingRepo.Update(ctx, &booking); err != nil {
			utils.GetLogger().Warn("completion sweep: update failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
			continue
		}
		e.publish(ctx, &booking, prev)
		completed++
	}
	return completed, nil
}

type publishOption func(*BookingEvent)

func withActor(actor string) publishOption {
	return func(ev *BookingEvent) { ev.Actor = actor }
}

// publish emits a state-change event. Delivery is best-effort: a sink failure
// is logged and the accepted transition stands.
func (e *DefaultEngine) publish(ctx context.Context, booking *models.Booking, prev models.BookingStatus, opts ...publishOption) {
	ev := BookingEvent{
		BookingID:      booking.ID,
		AvailabilityID: booking.AvailabilityID,
		PreviousStatus: prev,
		Status:         booking.Status,
		OccurredAt:     e.now(),
	}
	for _, opt := range opts {
		opt(&ev)
	}
	if err := e.sink().PublishBookingStateChange(ctx, ev); err != nil {
		utils.GetLogger().Warn("failed to publish booking state change",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
