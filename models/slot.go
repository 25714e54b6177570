package models

import "time"

// TimeRange is a half-open interval [Start, End) over absolute instants.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CandidateSlot is a computed, not-yet-booked window proposed as a match.
// It is search output only and is never persisted.
type CandidateSlot struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TimeZone     string    `json:"timeZone"`               // zone the instants are presented in
	Participants []string  `json:"participants,omitempty"` // availability IDs the slot satisfies
}

// SlotCheckResult is the outcome of a single-slot availability check.
// SuggestedTimes and ConflictingBookings enrich a failure; they never replace
// the Reason that reports it.
type SlotCheckResult struct {
	Available           bool            `json:"available"`
	Reason              string          `json:"reason,omitempty"`
	ConflictingBookings []Booking       `json:"conflictingBookings,omitempty"`
	SuggestedTimes      []CandidateSlot `json:"suggestedTimes,omitempty"`
}
