package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"randevu/middleware"
	"randevu/models"
	reviewSvc "randevu/services/review"
)

// ReviewHandler exposes review writes and shop review reads.
type ReviewHandler struct {
	Svc    reviewSvc.ReviewService
	Logger *zap.Logger
}

func NewReviewHandler(svc reviewSvc.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

// SubmitReviewHandler creates a review and triggers a rating recompute.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	review, err := h.Svc.Submit(c.Request.Context(), c.GetHeader(middleware.HeaderUserID), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// UpdateReviewHandler edits the caller's review and triggers a recompute.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	review, err := h.Svc.Update(c.Request.Context(), c.GetHeader(middleware.HeaderUserID), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReviewHandler removes the caller's review and triggers a recompute.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetHeader(middleware.HeaderUserID), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListShopReviewsHandler returns a shop's published reviews.
func (h *ReviewHandler) ListShopReviewsHandler(c *gin.Context) {
	reviews, err := h.Svc.ListByShop(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
