package bookingRepo

import (
	"context"
	"sync"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// MemoryBookingRepo is a mutex-guarded in-memory implementation. Reserve holds
// the lock across its check-and-insert, giving the same atomicity the Mongo
// implementation gets from a transaction. Used by tests and local development.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

// NewMemoryBookingRepo constructs an empty in-memory repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (repo *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	b, ok := repo.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := b
	return &copied, nil
}

func (repo *MemoryBookingRepo) ListActiveBookings(_ context.Context, availabilityID string, window models.TimeRange) ([]models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.activeLocked(availabilityID, window), nil
}

func (repo *MemoryBookingRepo) CountActive(_ context.Context, availabilityID string) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.activeLocked(availabilityID, models.TimeRange{})), nil
}

func (repo *MemoryBookingRepo) ListDueCompletions(_ context.Context, before time.Time) ([]models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var due []models.Booking
	for _, b := range repo.bookings {
		if b.Status == models.BookingConfirmed && !b.EndTime.After(before) {
			due = append(due, b)
		}
	}
	return due, nil
}

func (repo *MemoryBookingRepo) Reserve(_ context.Context, booking *models.Booking, maxBookings int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	window := models.TimeRange{Start: booking.StartTime, End: booking.EndTime}
	if len(repo.activeLocked(booking.AvailabilityID, window)) > 0 {
		return ErrSlotTaken
	}
	if maxBookings > 0 && len(repo.activeLocked(booking.AvailabilityID, models.TimeRange{})) >= maxBookings {
		return ErrCapacityExhausted
	}
	repo.bookings[booking.ID] = *booking
	return nil
}

func (repo *MemoryBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.bookings[booking.ID]; !ok {
		return ErrNotFound
	}
	repo.bookings[booking.ID] = *booking
	return nil
}

// activeLocked filters non-cancelled bookings on an availability, optionally
// narrowed to those overlapping the half-open window. Caller holds the lock.
func (repo *MemoryBookingRepo) activeLocked(availabilityID string, window models.TimeRange) []models.Booking {
	var out []models.Booking
	for _, b := range repo.bookings {
		if b.AvailabilityID != availabilityID || !b.IsActive() {
			continue
		}
		if !window.Start.IsZero() || !window.End.IsZero() {
			if !b.StartTime.Before(window.End) || !window.Start.Before(b.EndTime) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
