package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appointmentRepo "randevu/database/repository/appointment"
	reviewRepo "randevu/database/repository/review"
	shopRepo "randevu/database/repository/shop"
	userRepo "randevu/database/repository/user"
	appointmentSvc "randevu/services/appointment"
	"randevu/services/booking"
	reviewSvc "randevu/services/review"
	"randevu/utils"
)

// respondServiceError maps engine errors to HTTP statuses. Contention and
// validation outcomes are client-recoverable; anything unmatched is an
// infrastructure failure.
func respondServiceError(c *gin.Context, err error) {
	var transition *appointmentSvc.InvalidTransitionError

	switch {
	case errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrUserConflict),
		errors.Is(err, booking.ErrStaffConflict),
		errors.Is(err, reviewSvc.ErrDuplicateReview):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, booking.ErrNotBookable):
		utils.JSONError(c, http.StatusConflict, "not bookable", err.Error())
	case errors.As(err, &transition),
		errors.Is(err, appointmentSvc.ErrNotElapsed),
		errors.Is(err, appointmentRepo.ErrStatusConflict):
		utils.JSONError(c, http.StatusConflict, "invalid transition", err.Error())
	case errors.Is(err, booking.ErrInvalidRequest),
		errors.Is(err, reviewSvc.ErrInvalidRating):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, appointmentSvc.ErrUnauthorized),
		errors.Is(err, reviewSvc.ErrUnauthorized):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, appointmentRepo.ErrNotFound),
		errors.Is(err, shopRepo.ErrNotFound),
		errors.Is(err, reviewRepo.ErrNotFound),
		errors.Is(err, userRepo.ErrNotFound),
		errors.Is(err, booking.ErrServiceNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
