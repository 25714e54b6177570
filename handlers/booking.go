package handlers

import (
	"net/http"
	"time"

	"github.com/EAniwa/legacylancers-sub004/middleware"
	"github.com/EAniwa/legacylancers-sub004/services/scheduling"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the single-party booking path.
type BookingHandler struct {
	Engine scheduling.Engine
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(engine scheduling.Engine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

type checkSlotInput struct {
	AvailabilityID string    `json:"availabilityId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	TimeZone       string    `json:"timeZone"`
}

// CheckSlot runs the availability check without creating anything.
func (h *BookingHandler) CheckSlot(c *gin.Context) {
	var input checkSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Engine.CheckSlotAvailability(c.Request.Context(), input.AvailabilityID, input.StartTime, input.EndTime, input.TimeZone)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateBooking runs the atomic check-and-reserve path.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.BookedBy = middleware.CallerID(c)

	booking, err := h.Engine.Book(c.Request.Context(), req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBooking fetches a booking by id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Engine.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBooking moves a pending booking to confirmed.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.Engine.Confirm(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type cancelInput struct {
	Reason string `json:"reason"`
}

// CancelBooking cancels a pending or confirmed booking.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input cancelInput
	// Body is optional; an empty reason is permitted.
	_ = c.ShouldBindJSON(&input)

	booking, err := h.Engine.Cancel(c.Request.Context(), c.Param("id"), middleware.CallerID(c), input.Reason)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking applies a partial mutation to a booking.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var patch scheduling.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Engine.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
