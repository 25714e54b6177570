package models

import "time"

// ScheduleType distinguishes a one-off availability window from a recurring one.
type ScheduleType string

const (
	ScheduleOneTime   ScheduleType = "one_time"
	ScheduleRecurring ScheduleType = "recurring"
)

// AvailabilityStatus is the provider-controlled publication state of an availability.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityPaused    AvailabilityStatus = "paused"
	AvailabilityClosed    AvailabilityStatus = "closed"
)

// Availability is a provider-declared window during which engagements may be booked.
// Times of day are expressed in the availability's own zone; the active date range
// bounds the days on which the daily window applies.
type Availability struct {
	ID             string             `bson:"id" json:"id"`
	OwnerID        string             `bson:"owner_id" json:"ownerId"`                 // opaque provider identity
	ScheduleType   ScheduleType       `bson:"schedule_type" json:"scheduleType"`       // one_time or recurring
	StartDate      time.Time          `bson:"start_date" json:"startDate"`             // first active day (inclusive)
	EndDate        time.Time          `bson:"end_date" json:"endDate"`                 // last active day (inclusive)
	DailyStartTime string             `bson:"daily_start_time" json:"dailyStartTime"`  // "HH:MM" in TimeZone
	DailyEndTime   string             `bson:"daily_end_time" json:"dailyEndTime"`      // "HH:MM" in TimeZone
	TimeZone       string             `bson:"time_zone" json:"timeZone"`               // IANA zone identifier
	Status         AvailabilityStatus `bson:"status" json:"status"`                    // available, paused, closed
	MaxBookings    int                `bson:"max_bookings" json:"maxBookings"`         // concurrent non-cancelled booking cap
	MinNoticeHours int                `bson:"min_notice_hours" json:"minNoticeHours"`  // lead time required before a booking starts
	MaxAdvanceDays int                `bson:"max_advance_days" json:"maxAdvanceDays"`  // how far ahead a booking may start
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`

	// CurrentBookings is derived from the live non-cancelled booking count at read
	// time. It is never persisted; caching it independently invites drift.
	CurrentBookings int `bson:"-" json:"currentBookings"`
}
