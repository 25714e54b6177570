package models

import "time"

// BookingStatus is the lifecycle state of a booking record.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking represents a time-bound engagement request against an availability.
// StartTime and EndTime are absolute instants stored in UTC; TimeZone is only
// the requester's display preference and never affects comparisons.
type Booking struct {
	ID              string            `bson:"id" json:"id"`
	AvailabilityID  string            `bson:"availability_id" json:"availabilityId"`
	BookedBy        string            `bson:"booked_by" json:"bookedBy"` // opaque client identity
	StartTime       time.Time         `bson:"start_time" json:"startTime"`
	EndTime         time.Time         `bson:"end_time" json:"endTime"`
	TimeZone        string            `bson:"time_zone" json:"timeZone"`
	DurationMinutes int               `bson:"duration_minutes" json:"durationMinutes"` // derived from start/end
	Notes           string            `bson:"notes,omitempty" json:"notes,omitempty"`
	AttendeeInfo    map[string]string `bson:"attendee_info,omitempty" json:"attendeeInfo,omitempty"`
	Status          BookingStatus     `bson:"status" json:"status"`
	CancelReason    string            `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"` // stored verbatim, may be empty
	CreatedAt       time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updatedAt"`
	ConfirmedAt     *time.Time        `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	ConfirmedBy     string            `bson:"confirmed_by,omitempty" json:"confirmedBy,omitempty"`
	CancelledAt     *time.Time        `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy     string            `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
	CompletedAt     *time.Time        `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// IsActive reports whether the booking still occupies capacity on its
// availability. Cancelled bookings free their slot; every other state holds it.
func (b *Booking) IsActive() bool {
	return b.Status != BookingCancelled
}

// IsTerminal reports whether the booking has reached a final state.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCompleted
}
