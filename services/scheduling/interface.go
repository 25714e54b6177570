package scheduling

import (
	"context"
	"time"

	availabilityRepo "github.com/EAniwa/legacylancers-sub004/database/repository/availability"
	bookingRepo "github.com/EAniwa/legacylancers-sub004/database/repository/booking"
	"github.com/EAniwa/legacylancers-sub004/models"
)

// BookingRequest carries the caller-supplied fields for a new booking.
type BookingRequest struct {
	AvailabilityID string            `json:"availabilityId"`
	BookedBy       string            `json:"bookedBy"`
	StartTime      time.Time         `json:"startTime"`
	EndTime        time.Time         `json:"endTime"`
	TimeZone       string            `json:"timeZone"`
	Notes          string            `json:"notes,omitempty"`
	AttendeeInfo   map[string]string `json:"attendeeInfo,omitempty"`
}

// BookingPatch carries partial updates to a booking. Identity fields (id,
// availabilityId, bookedBy, createdAt) are deliberately absent; they cannot
// be mutated.
type BookingPatch struct {
	StartTime    *time.Time        `json:"startTime,omitempty"`
	EndTime      *time.Time        `json:"endTime,omitempty"`
	TimeZone     *string           `json:"timeZone,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	AttendeeInfo map[string]string `json:"attendeeInfo,omitempty"`
}

// CommonSlotRequest describes a multi-participant shared-window search.
type CommonSlotRequest struct {
	AvailabilityIDs []string  `json:"availabilityIds"`
	DurationMinutes int       `json:"durationMinutes"`
	EarliestStart   time.Time `json:"earliestStart"`
	LatestEnd       time.Time `json:"latestEnd"`
	OutputTimeZone  string    `json:"outputTimeZone"`
}

// Engine is the scheduling and conflict-resolution core. All operations are
// synchronous computations over the backing repositories; the atomicity of the
// conflict-check-then-write sequence is delegated to BookingRepository.Reserve.
type Engine interface {
	CheckSlotAvailability(ctx context.Context, availabilityID string, desiredStart, desiredEnd time.Time, requestTimeZone string) (*models.SlotCheckResult, error)
	Book(ctx context.Context, req BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	Confirm(ctx context.Context, id, confirmedBy string) (*models.Booking, error)
	Cancel(ctx context.Context, id, cancelledBy, reason string) (*models.Booking, error)
	Update(ctx context.Context, id string, patch BookingPatch) (*models.Booking, error)
	FindCommonSlots(ctx context.Context, req CommonSlotRequest) ([]models.CandidateSlot, error)
	CompleteDueBookings(ctx context.Context, now time.Time) (int, error)
}

// DefaultEngine implements Engine.
type DefaultEngine struct {
	AvailabilityRepo availabilityRepo.AvailabilityRepository
	BookingRepo      bookingRepo.BookingRepository
	Events           EventSink

	// Clock returns the current instant; overridable in tests. Defaults to
	// time.Now when nil.
	Clock func() time.Time
}

func (e *DefaultEngine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func (e *DefaultEngine) sink() EventSink {
	if e.Events != nil {
		return e.Events
	}
	return NoopEventSink{}
}
