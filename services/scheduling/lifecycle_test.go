package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBookingRequest(start, end time.Time) BookingRequest {
	return BookingRequest{
		AvailabilityID: "av-1",
		BookedBy:       "client-1",
		StartTime:      start,
		EndTime:        end,
		TimeZone:       "UTC",
	}
}

func TestBook(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("creates a pending booking", func(t *testing.T) {
		engine, sink := newTestEngine(t, testAvailability())

		booking, err := engine.Book(ctx, testBookingRequest(start, end))
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, models.BookingPending, booking.Status)
		assert.Equal(t, 60, booking.DurationMinutes)
		assert.Equal(t, testNow, booking.CreatedAt)

		require.Len(t, sink.events, 1)
		assert.Equal(t, booking.ID, sink.events[0].BookingID)
		assert.Equal(t, models.BookingPending, sink.events[0].Status)
	})

	t.Run("missing fields are validation errors", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())

		req := testBookingRequest(start, end)
		req.BookedBy = ""
		_, err := engine.Book(ctx, req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "bookedBy", vErr.Field)
	})

	t.Run("empty time zone defaults to UTC", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())

		req := testBookingRequest(start, end)
		req.TimeZone = ""
		booking, err := engine.Book(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "UTC", booking.TimeZone)
	})

	t.Run("end before start is a range error", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())

		_, err := engine.Book(ctx, testBookingRequest(end, start))
		var rErr *InvalidRangeError
		assert.ErrorAs(t, err, &rErr)
	})

	t.Run("overlap surfaces as a conflict with the blocking set", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		existing := seedBooking(t, engine, "av-1", start, end, models.BookingConfirmed)

		_, err := engine.Book(ctx, testBookingRequest(start.Add(30*time.Minute), end.Add(30*time.Minute)))
		var cErr *ConflictError
		require.ErrorAs(t, err, &cErr)
		require.Len(t, cErr.Conflicting, 1)
		assert.Equal(t, existing.ID, cErr.Conflicting[0].ID)
	})

	t.Run("capacity rejects the extra booking even without overlap", func(t *testing.T) {
		av := testAvailability()
		av.MaxBookings = 2
		engine, _ := newTestEngine(t, av)
		seedBooking(t, engine, "av-1", start, end, models.BookingConfirmed)
		seedBooking(t, engine, "av-1", start.Add(2*time.Hour), end.Add(2*time.Hour), models.BookingConfirmed)

		_, err := engine.Book(ctx, testBookingRequest(start.Add(4*time.Hour), end.Add(4*time.Hour)))
		var pErr *PolicyViolation
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, ReasonCapacity, pErr.Reason)
	})

	t.Run("cancellation frees the slot for rebooking", func(t *testing.T) {
		av := testAvailability()
		av.MaxBookings = 1
		engine, _ := newTestEngine(t, av)

		first, err := engine.Book(ctx, testBookingRequest(start, end))
		require.NoError(t, err)
		_, err = engine.Book(ctx, testBookingRequest(start, end))
		require.Error(t, err)

		_, err = engine.Cancel(ctx, first.ID, "client-1", "plans changed")
		require.NoError(t, err)

		second, err := engine.Book(ctx, testBookingRequest(start, end))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	engine, sink := newTestEngine(t, testAvailability())
	booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
	require.NoError(t, err)

	confirmed, err := engine.Confirm(ctx, booking.ID, "provider-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	assert.Equal(t, "provider-1", confirmed.ConfirmedBy)
	require.NotNil(t, confirmed.ConfirmedAt)

	last := sink.events[len(sink.events)-1]
	assert.Equal(t, models.BookingPending, last.PreviousStatus)
	assert.Equal(t, models.BookingConfirmed, last.Status)
	assert.Equal(t, "provider-1", last.Actor)

	// Confirming twice is not idempotent.
	_, err = engine.Confirm(ctx, booking.ID, "provider-1")
	var tErr *InvalidTransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, models.BookingConfirmed, tErr.From)

	_, err = engine.Confirm(ctx, "no-such-booking", "provider-1")
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	t.Run("stores the reason verbatim", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)

		cancelled, err := engine.Cancel(ctx, booking.ID, "client-1", "  plans changed  ")
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, cancelled.Status)
		assert.Equal(t, "  plans changed  ", cancelled.CancelReason)
		require.NotNil(t, cancelled.CancelledAt)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)

		_, err = engine.Cancel(ctx, booking.ID, "client-1", "")
		require.NoError(t, err)

		_, err = engine.Cancel(ctx, booking.ID, "client-1", "")
		var tErr *InvalidTransitionError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, models.BookingCancelled, tErr.From)
	})

	t.Run("completed bookings cannot be cancelled", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		booking := seedBooking(t, engine, "av-1", start, start.Add(time.Hour), models.BookingCompleted)

		_, err := engine.Cancel(ctx, booking.ID, "client-1", "")
		var tErr *InvalidTransitionError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, models.BookingCompleted, tErr.From)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	t.Run("recomputes duration when the range moves", func(t *testing.T) {
		engine, sink := newTestEngine(t, testAvailability())
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)

		newEnd := start.Add(90 * time.Minute)
		updated, err := engine.Update(ctx, booking.ID, BookingPatch{EndTime: &newEnd})
		require.NoError(t, err)
		assert.Equal(t, 90, updated.DurationMinutes)
		assert.Equal(t, start, updated.StartTime)

		// The mutation publishes an event even though status is unchanged.
		last := sink.events[len(sink.events)-1]
		assert.Equal(t, booking.ID, last.BookingID)
		assert.Equal(t, models.BookingPending, last.PreviousStatus)
		assert.Equal(t, models.BookingPending, last.Status)
	})

	t.Run("cannot be moved onto an occupied slot", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		other := seedBooking(t, engine, "av-1", start.Add(2*time.Hour), start.Add(3*time.Hour), models.BookingConfirmed)
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)

		newStart := start.Add(2*time.Hour + 30*time.Minute)
		newEnd := newStart.Add(time.Hour)
		_, err = engine.Update(ctx, booking.ID, BookingPatch{StartTime: &newStart, EndTime: &newEnd})
		var cErr *ConflictError
		require.ErrorAs(t, err, &cErr)
		require.Len(t, cErr.Conflicting, 1)
		assert.Equal(t, other.ID, cErr.Conflicting[0].ID)

		// The booking stays on its original range.
		unchanged, err := engine.GetBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.True(t, unchanged.StartTime.Equal(start))
	})

	t.Run("cannot be moved outside the daily window", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)

		newStart := start.Add(9 * time.Hour) // 19:00, past the 17:00 close
		newEnd := newStart.Add(time.Hour)
		_, err = engine.Update(ctx, booking.ID, BookingPatch{StartTime: &newStart, EndTime: &newEnd})
		var pErr *PolicyViolation
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, ReasonOutsideHours, pErr.Reason)
	})

	t.Run("overlapping its own old range is not a conflict", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)

		newStart := start.Add(30 * time.Minute)
		newEnd := newStart.Add(time.Hour)
		updated, err := engine.Update(ctx, booking.ID, BookingPatch{StartTime: &newStart, EndTime: &newEnd})
		require.NoError(t, err)
		assert.True(t, updated.StartTime.Equal(newStart))
	})

	t.Run("rejects a patch that inverts the range", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)

		badEnd := start.Add(-time.Hour)
		_, err = engine.Update(ctx, booking.ID, BookingPatch{EndTime: &badEnd})
		var rErr *InvalidRangeError
		assert.ErrorAs(t, err, &rErr)
	})

	t.Run("terminal bookings are immutable", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())
		booking, err := engine.Book(ctx, testBookingRequest(start, start.Add(time.Hour)))
		require.NoError(t, err)
		_, err = engine.Cancel(ctx, booking.ID, "client-1", "")
		require.NoError(t, err)

		notes := "late notes"
		_, err = engine.Update(ctx, booking.ID, BookingPatch{Notes: &notes})
		var tErr *InvalidTransitionError
		assert.ErrorAs(t, err, &tErr)
	})
}

func TestCompleteDueBookings(t *testing.T) {
	ctx := context.Background()
	engine, sink := newTestEngine(t, testAvailability())

	past := testNow.Add(-3 * time.Hour)
	due := seedBooking(t, engine, "av-1", past, past.Add(time.Hour), models.BookingConfirmed)
	seedBooking(t, engine, "av-1", testNow.Add(2*time.Hour), testNow.Add(3*time.Hour), models.BookingConfirmed)
	seedBooking(t, engine, "av-1", past.Add(-2*time.Hour), past.Add(-time.Hour), models.BookingPending)

	completed, err := engine.CompleteDueBookings(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	refreshed, err := engine.GetBooking(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, refreshed.Status)
	require.NotNil(t, refreshed.CompletedAt)

	require.Len(t, sink.events, 1)
	assert.Equal(t, models.BookingCompleted, sink.events[0].Status)

	// A second sweep finds nothing left to complete.
	completed, err = engine.CompleteDueBookings(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, completed)
}
