package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	"randevu/middleware"
	appointmentSvc "randevu/services/appointment"
)

// AppointmentHandler exposes lifecycle transitions and appointment reads.
type AppointmentHandler struct {
	Lifecycle appointmentSvc.LifecycleService
	Repo      appointmentRepo.AppointmentRepository
	Logger    *zap.Logger
}

func NewAppointmentHandler(lifecycle appointmentSvc.LifecycleService, repo appointmentRepo.AppointmentRepository, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Lifecycle: lifecycle, Repo: repo, Logger: logger}
}

// ConfirmAsUserHandler handles the customer confirmation link. Safe to hit
// twice; the transition is idempotent.
func (h *AppointmentHandler) ConfirmAsUserHandler(c *gin.Context) {
	appt, err := h.Lifecycle.ConfirmAsUser(c.Request.Context(), c.Param("id"), c.GetHeader(middleware.HeaderUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// ConfirmAsBusinessHandler handles confirmation from the business dashboard.
func (h *AppointmentHandler) ConfirmAsBusinessHandler(c *gin.Context) {
	appt, err := h.Lifecycle.ConfirmAsBusiness(c.Request.Context(), c.Param("id"), c.GetHeader(middleware.HeaderShopID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// MarkCompletedHandler lets the business mark a past appointment done.
// force=true bypasses the elapsed-time gate for ops use.
func (h *AppointmentHandler) MarkCompletedHandler(c *gin.Context) {
	actor := appointmentSvc.Actor{ShopID: c.GetHeader(middleware.HeaderShopID)}
	force := c.Query("force") == "true"

	appt, err := h.Lifecycle.MarkCompleted(c.Request.Context(), c.Param("id"), actor, force)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// ListMineHandler returns the calling user's appointments.
func (h *AppointmentHandler) ListMineHandler(c *gin.Context) {
	appts, err := h.Repo.ListByUser(c.Request.Context(), c.GetHeader(middleware.HeaderUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListShopDayHandler returns a shop's appointments for one day (dashboard).
func (h *AppointmentHandler) ListShopDayHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	appts, err := h.Repo.ListByShopDay(c.Request.Context(), c.GetHeader(middleware.HeaderShopID), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
