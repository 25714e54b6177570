package scheduling

import (
	"fmt"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// Policy and check reason codes. Callers receive these verbatim; the paired
// message is for humans only.
const (
	ReasonStatus       = "status"
	ReasonNotice       = "notice"
	ReasonAdvance      = "advance"
	ReasonWindow       = "window"
	ReasonOutsideHours = "outside_hours"
	ReasonConflict     = "conflict"
	ReasonCapacity     = "capacity"
)

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation: %s", e.Message)
}

// PolicyViolation reports a booking rejected by an availability rule. Reason is
// a stable machine code; Message is free text for display.
type PolicyViolation struct {
	Reason  string
	Message string
}

func (e *PolicyViolation) Error() string {
	return fmt.Sprintf("policy violation (%s): %s", e.Reason, e.Message)
}

// ConflictError reports an overlap with existing non-cancelled bookings. The
// conflicting set rides along so callers can surface it.
type ConflictError struct {
	Message     string
	Conflicting []models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// NotFoundError reports an unknown record id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvalidTransitionError reports a booking mutation that the state machine
// does not permit from the record's current status.
type InvalidTransitionError struct {
	From models.BookingStatus
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %q", e.Op, e.From)
}

// InvalidTimeZoneError reports a malformed IANA zone identifier.
type InvalidTimeZoneError struct {
	Zone string
}

func (e *InvalidTimeZoneError) Error() string {
	return fmt.Sprintf("invalid time zone %q", e.Zone)
}

// InvalidRangeError reports a time range whose end does not follow its start.
type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: %s", e.Message)
}
