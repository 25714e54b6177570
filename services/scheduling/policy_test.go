package scheduling

import (
	"testing"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAvailability() *models.Availability {
	return &models.Availability{
		ID:             "av-1",
		OwnerID:        "provider-1",
		ScheduleType:   models.ScheduleRecurring,
		DailyStartTime: "09:00",
		DailyEndTime:   "17:00",
		TimeZone:       "UTC",
		Status:         models.AvailabilityAvailable,
		MaxBookings:    5,
		MinNoticeHours: 0,
		MaxAdvanceDays: 30,
	}
}

func TestIsBookable(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	t.Run("accepts a compliant request", func(t *testing.T) {
		av := testAvailability()
		assert.NoError(t, IsBookable(av, now, now.AddDate(0, 0, 1)))
	})

	t.Run("paused availability fails on status first", func(t *testing.T) {
		av := testAvailability()
		av.Status = models.AvailabilityPaused
		// Also violate the notice rule; status must still win.
		av.MinNoticeHours = 24

		err := IsBookable(av, now, now.Add(time.Hour))
		var pv *PolicyViolation
		require.ErrorAs(t, err, &pv)
		assert.Equal(t, ReasonStatus, pv.Reason)
	})

	t.Run("insufficient notice", func(t *testing.T) {
		// Availability 09:00-17:00 UTC with 24h minimum notice; a request one
		// hour out must be rejected for notice.
		av := testAvailability()
		av.MinNoticeHours = 24

		err := IsBookable(av, now, now.Add(time.Hour))
		var pv *PolicyViolation
		require.ErrorAs(t, err, &pv)
		assert.Equal(t, ReasonNotice, pv.Reason)
	})

	t.Run("too far in advance", func(t *testing.T) {
		av := testAvailability()
		av.MaxAdvanceDays = 7

		err := IsBookable(av, now, now.AddDate(0, 0, 8))
		var pv *PolicyViolation
		require.ErrorAs(t, err, &pv)
		assert.Equal(t, ReasonAdvance, pv.Reason)
	})

	t.Run("before the active date range", func(t *testing.T) {
		av := testAvailability()
		av.StartDate = now.AddDate(0, 0, 10)
		av.EndDate = now.AddDate(0, 0, 20)

		err := IsBookable(av, now, now.AddDate(0, 0, 5))
		var pv *PolicyViolation
		require.ErrorAs(t, err, &pv)
		assert.Equal(t, ReasonWindow, pv.Reason)
	})

	t.Run("after the active date range", func(t *testing.T) {
		av := testAvailability()
		av.StartDate = now.AddDate(0, 0, -10)
		av.EndDate = now.AddDate(0, 0, 2)

		err := IsBookable(av, now, now.AddDate(0, 0, 5))
		var pv *PolicyViolation
		require.ErrorAs(t, err, &pv)
		assert.Equal(t, ReasonWindow, pv.Reason)
	})

	t.Run("end date is inclusive", func(t *testing.T) {
		av := testAvailability()
		av.StartDate = now.AddDate(0, 0, -10)
		av.EndDate = now.AddDate(0, 0, 2)

		// 10:00 on the end date itself is still inside the range.
		endDay := now.AddDate(0, 0, 2)
		desired := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 10, 0, 0, 0, time.UTC)
		assert.NoError(t, IsBookable(av, now, desired))
	})
}
