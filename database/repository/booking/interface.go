package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// Sentinel errors surfaced by every implementation. The scheduling engine maps
// these onto its caller-facing error taxonomy.
var (
	// ErrNotFound means no booking exists with the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken means a reserve attempt lost to an overlapping active booking.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrCapacityExhausted means a reserve attempt found the availability full.
	ErrCapacityExhausted = errors.New("availability capacity exhausted")
)

// BookingRepository persists booking records for the scheduling engine.
//
// Reserve is the linchpin: it must re-run the overlap and capacity checks and
// insert the record as one atomic unit, because the engine's own pre-check and
// the write are otherwise separated by a window two concurrent requests can
// both slip through.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListActiveBookings returns non-cancelled bookings on an availability that
	// overlap the window. A zero-valued window matches everything.
	ListActiveBookings(ctx context.Context, availabilityID string, window models.TimeRange) ([]models.Booking, error)
	// CountActive returns the number of non-cancelled bookings on an availability.
	CountActive(ctx context.Context, availabilityID string) (int, error)
	// ListDueCompletions returns confirmed bookings whose end time has passed.
	ListDueCompletions(ctx context.Context, before time.Time) ([]models.Booking, error)
	// Reserve atomically re-validates overlap and capacity, then inserts the
	// booking. Fails with ErrSlotTaken or ErrCapacityExhausted.
	Reserve(ctx context.Context, booking *models.Booking, maxBookings int) error
	Update(ctx context.Context, booking *models.Booking) error
}
