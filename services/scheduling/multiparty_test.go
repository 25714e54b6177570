package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/EAniwa/legacylancers-sub004/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two providers keeping 09:00-17:00 local hours, five time zones apart. Early
// March keeps New York on EST, so their working days overlap 14:00-17:00 UTC.
func crossZoneParticipants() (*models.Availability, *models.Availability) {
	newYork := testAvailability()
	newYork.ID = "av-ny"
	newYork.OwnerID = "provider-ny"
	newYork.TimeZone = "America/New_York"

	london := testAvailability()
	london.ID = "av-ldn"
	london.OwnerID = "provider-ldn"
	london.TimeZone = "Europe/London"

	return newYork, london
}

func TestFindCommonSlots(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("finds the shared window across zones", func(t *testing.T) {
		newYork, london := crossZoneParticipants()
		engine, _ := newTestEngine(t, newYork, london)
		// New York is busy for the first shared hour.
		seedBooking(t, engine, "av-ny",
			monday.Add(14*time.Hour), monday.Add(15*time.Hour), models.BookingConfirmed)

		slots, err := engine.FindCommonSlots(ctx, CommonSlotRequest{
			AvailabilityIDs: []string{"av-ny", "av-ldn"},
			DurationMinutes: 60,
			EarliestStart:   monday,
			LatestEnd:       monday.Add(16*time.Hour + 30*time.Minute),
			OutputTimeZone:  "UTC",
		})
		require.NoError(t, err)

		require.Len(t, slots, 1)
		slot := slots[0]
		assert.True(t, slot.Start.Equal(monday.Add(15*time.Hour)))
		assert.True(t, slot.End.Equal(monday.Add(16*time.Hour)))
		assert.Equal(t, "UTC", slot.TimeZone)
		assert.Equal(t, []string{"av-ny", "av-ldn"}, slot.Participants)

		// The slot sits inside both participants' local working hours.
		ny, _ := time.LoadLocation("America/New_York")
		assert.Equal(t, 10, slot.Start.In(ny).Hour())
		ldn, _ := time.LoadLocation("Europe/London")
		assert.Equal(t, 15, slot.Start.In(ldn).Hour())
	})

	t.Run("results are expressed in the output zone", func(t *testing.T) {
		newYork, london := crossZoneParticipants()
		engine, _ := newTestEngine(t, newYork, london)

		slots, err := engine.FindCommonSlots(ctx, CommonSlotRequest{
			AvailabilityIDs: []string{"av-ny", "av-ldn"},
			DurationMinutes: 60,
			EarliestStart:   monday,
			LatestEnd:       monday.Add(17 * time.Hour),
			OutputTimeZone:  "America/New_York",
		})
		require.NoError(t, err)

		require.NotEmpty(t, slots)
		for _, slot := range slots {
			assert.Equal(t, "America/New_York", slot.TimeZone)
			assert.Equal(t, "America/New_York", slot.Start.Location().String())
		}
	})

	t.Run("no shared window yields an empty result", func(t *testing.T) {
		newYork, london := crossZoneParticipants()
		engine, _ := newTestEngine(t, newYork, london)

		// The search range ends before New York's day begins.
		slots, err := engine.FindCommonSlots(ctx, CommonSlotRequest{
			AvailabilityIDs: []string{"av-ny", "av-ldn"},
			DurationMinutes: 60,
			EarliestStart:   monday.Add(9 * time.Hour),
			LatestEnd:       monday.Add(12 * time.Hour),
			OutputTimeZone:  "UTC",
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("caps the candidate list", func(t *testing.T) {
		solo := testAvailability()
		engine, _ := newTestEngine(t, solo)

		// A week of 30-minute slots in a single zone far exceeds the cap.
		slots, err := engine.FindCommonSlots(ctx, CommonSlotRequest{
			AvailabilityIDs: []string{"av-1"},
			DurationMinutes: 30,
			EarliestStart:   monday,
			LatestEnd:       monday.AddDate(0, 0, 7),
			OutputTimeZone:  "UTC",
		})
		require.NoError(t, err)
		assert.Len(t, slots, maxCommonSlots)
	})

	t.Run("unknown participant fails the whole search", func(t *testing.T) {
		newYork, _ := crossZoneParticipants()
		engine, _ := newTestEngine(t, newYork)

		_, err := engine.FindCommonSlots(ctx, CommonSlotRequest{
			AvailabilityIDs: []string{"av-ny", "av-ghost"},
			DurationMinutes: 60,
			EarliestStart:   monday,
			LatestEnd:       monday.Add(17 * time.Hour),
			OutputTimeZone:  "UTC",
		})
		require.Error(t, err)
	})

	t.Run("request validation", func(t *testing.T) {
		engine, _ := newTestEngine(t, testAvailability())

		base := CommonSlotRequest{
			AvailabilityIDs: []string{"av-1"},
			DurationMinutes: 60,
			EarliestStart:   monday,
			LatestEnd:       monday.Add(17 * time.Hour),
			OutputTimeZone:  "UTC",
		}

		req := base
		req.AvailabilityIDs = nil
		_, err := engine.FindCommonSlots(ctx, req)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)

		req = base
		req.DurationMinutes = 0
		_, err = engine.FindCommonSlots(ctx, req)
		assert.ErrorAs(t, err, &vErr)

		req = base
		req.OutputTimeZone = "Not/AZone"
		_, err = engine.FindCommonSlots(ctx, req)
		var tzErr *InvalidTimeZoneError
		assert.ErrorAs(t, err, &tzErr)

		req = base
		req.LatestEnd = req.EarliestStart
		_, err = engine.FindCommonSlots(ctx, req)
		var rErr *InvalidRangeError
		assert.ErrorAs(t, err, &rErr)
	})
}
