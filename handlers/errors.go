package handlers

import (
	"errors"
	"net/http"

	"github.com/EAniwa/legacylancers-sub004/services/scheduling"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/gin-gonic/gin"
)

// respondSchedulingError maps an engine error onto an HTTP status and a
// structured body. Conflict payloads keep the conflicting set; policy
// violations keep their machine reason.
func respondSchedulingError(c *gin.Context, err error) {
	var (
		validation *scheduling.ValidationError
		policy     *scheduling.PolicyViolation
		conflict   *scheduling.ConflictError
		notFound   *scheduling.NotFoundError
		transition *scheduling.InvalidTransitionError
		badZone    *scheduling.InvalidTimeZoneError
		badRange   *scheduling.InvalidRangeError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: validation.Error()})
	case errors.As(err, &badZone):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: badZone.Error()})
	case errors.As(err, &badRange):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: badRange.Error()})
	case errors.As(err, &policy):
		c.JSON(http.StatusUnprocessableEntity, utils.ErrorResponse{
			Message: policy.Message,
			Reason:  policy.Reason,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"message":             conflict.Message,
			"reason":              scheduling.ReasonConflict,
			"conflictingBookings": conflict.Conflicting,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: notFound.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: transition.Error()})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
