package handlers

import (
	"errors"
	"net/http"
	"time"

	availabilityRepo "github.com/EAniwa/legacylancers-sub004/database/repository/availability"
	bookingRepo "github.com/EAniwa/legacylancers-sub004/database/repository/booking"
	"github.com/EAniwa/legacylancers-sub004/middleware"
	"github.com/EAniwa/legacylancers-sub004/models"
	"github.com/EAniwa/legacylancers-sub004/services/scheduling"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AvailabilityHandler exposes provider-owned availability management.
type AvailabilityHandler struct {
	Repo     availabilityRepo.AvailabilityRepository
	Bookings bookingRepo.BookingRepository
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(repo availabilityRepo.AvailabilityRepository, bookings bookingRepo.BookingRepository) *AvailabilityHandler {
	return &AvailabilityHandler{Repo: repo, Bookings: bookings}
}

type availabilityInput struct {
	ScheduleType   models.ScheduleType `json:"scheduleType"`
	StartDate      time.Time           `json:"startDate"`
	EndDate        time.Time           `json:"endDate"`
	DailyStartTime string              `json:"dailyStartTime"`
	DailyEndTime   string              `json:"dailyEndTime"`
	TimeZone       string              `json:"timeZone"`
	MaxBookings    int                 `json:"maxBookings"`
	MinNoticeHours int                 `json:"minNoticeHours"`
	MaxAdvanceDays int                 `json:"maxAdvanceDays"`
}

// CreateAvailability registers a new availability owned by the caller.
func (h *AvailabilityHandler) CreateAvailability(c *gin.Context) {
	var input availabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := scheduling.ValidateZone(input.TimeZone); err != nil {
		respondSchedulingError(c, err)
		return
	}
	if input.DailyStartTime == "" || input.DailyEndTime == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "dailyStartTime and dailyEndTime are required")
		return
	}

	now := time.Now()
	av := models.Availability{
		ID:             uuid.New().String(),
		OwnerID:        middleware.CallerID(c),
		ScheduleType:   input.ScheduleType,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		DailyStartTime: input.DailyStartTime,
		DailyEndTime:   input.DailyEndTime,
		TimeZone:       input.TimeZone,
		Status:         models.AvailabilityAvailable,
		MaxBookings:    input.MaxBookings,
		MinNoticeHours: input.MinNoticeHours,
		MaxAdvanceDays: input.MaxAdvanceDays,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if av.ScheduleType == "" {
		av.ScheduleType = models.ScheduleRecurring
	}

	if err := h.Repo.Create(c.Request.Context(), &av); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create availability", err.Error())
		return
	}
	c.JSON(http.StatusCreated, av)
}

// GetAvailability returns one availability with its derived booking count.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	av, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "availability not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch availability", err.Error())
		return
	}

	count, err := h.Bookings.CountActive(c.Request.Context(), av.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count bookings", err.Error())
		return
	}
	av.CurrentBookings = count

	c.JSON(http.StatusOK, av)
}

type availabilityPatch struct {
	Status         *models.AvailabilityStatus `json:"status,omitempty"`
	StartDate      *time.Time                 `json:"startDate,omitempty"`
	EndDate        *time.Time                 `json:"endDate,omitempty"`
	DailyStartTime *string                    `json:"dailyStartTime,omitempty"`
	DailyEndTime   *string                    `json:"dailyEndTime,omitempty"`
	MaxBookings    *int                       `json:"maxBookings,omitempty"`
	MinNoticeHours *int                       `json:"minNoticeHours,omitempty"`
	MaxAdvanceDays *int                       `json:"maxAdvanceDays,omitempty"`
}

// UpdateAvailability applies a partial mutation. Only the owner may mutate;
// records are never hard-deleted, providers close them instead.
func (h *AvailabilityHandler) UpdateAvailability(c *gin.Context) {
	var patch availabilityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	av, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "availability not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch availability", err.Error())
		return
	}
	if av.OwnerID != middleware.CallerID(c) {
		utils.JSONError(c, http.StatusForbidden, "only the owner may modify an availability", "")
		return
	}

	if patch.Status != nil {
		switch *patch.Status {
		case models.AvailabilityAvailable, models.AvailabilityPaused, models.AvailabilityClosed:
			av.Status = *patch.Status
		default:
			utils.JSONError(c, http.StatusBadRequest, "invalid status", string(*patch.Status))
			return
		}
	}
	if patch.StartDate != nil {
		av.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		av.EndDate = *patch.EndDate
	}
	if patch.DailyStartTime != nil {
		av.DailyStartTime = *patch.DailyStartTime
	}
	if patch.DailyEndTime != nil {
		av.DailyEndTime = *patch.DailyEndTime
	}
	if patch.MaxBookings != nil {
		av.MaxBookings = *patch.MaxBookings
	}
	if patch.MinNoticeHours != nil {
		av.MinNoticeHours = *patch.MinNoticeHours
	}
	if patch.MaxAdvanceDays != nil {
		av.MaxAdvanceDays = *patch.MaxAdvanceDays
	}
	av.UpdatedAt = time.Now()

	if err := h.Repo.Update(c.Request.Context(), av); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, av)
}
