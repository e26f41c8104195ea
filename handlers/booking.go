package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"randevu/middleware"
	"randevu/models"
	appointmentSvc "randevu/services/appointment"
	"randevu/services/booking"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// BookHandler creates a new appointment from a free slot.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.UserID = c.GetHeader(middleware.HeaderUserID)

	appt, err := h.Svc.Book(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelHandler cancels an appointment on behalf of its user or shop and
// releases the slot.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	actor := appointmentSvc.Actor{
		UserID: c.GetHeader(middleware.HeaderUserID),
		ShopID: c.GetHeader(middleware.HeaderShopID),
	}
	appt, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), actor, input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// GetAvailableTimesHandler returns the free times for one day.
func (h *BookingHandler) GetAvailableTimesHandler(c *gin.Context) {
	shopID := c.Param("shopId")
	date := c.Query("date")
	staffID := c.Query("staffId")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	times, err := h.Svc.GetAvailableTimes(c.Request.Context(), shopID, staffID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopId": shopID, "date": date, "availableTimes": times})
}

// CalendarHandler returns the upcoming availability window for rendering a
// booking calendar.
func (h *BookingHandler) CalendarHandler(c *gin.Context) {
	shopID := c.Param("shopId")
	staffID := c.Query("staffId")
	from := c.Query("from")
	if from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from query parameter is required"})
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	slots, err := h.Svc.Calendar(c.Request.Context(), shopID, staffID, from, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopId": shopID, "calendar": slots})
}

// PublishScheduleHandler bulk-generates the rolling availability window.
func (h *BookingHandler) PublishScheduleHandler(c *gin.Context) {
	shopID := c.GetHeader(middleware.HeaderShopID)
	var req models.PublishScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	days, err := h.Svc.PublishSchedule(c.Request.Context(), shopID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopId": shopID, "publishedDays": days})
}
