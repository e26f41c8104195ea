package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	shopRepo "randevu/database/repository/shop"
)

// ShopHandler serves shop detail reads, including the derived rating.
type ShopHandler struct {
	Repo shopRepo.ShopRepository
}

func NewShopHandler(repo shopRepo.ShopRepository) *ShopHandler {
	return &ShopHandler{Repo: repo}
}

// GetShopHandler returns the shop with its catalog and embedded rating.
func (h *ShopHandler) GetShopHandler(c *gin.Context) {
	shop, err := h.Repo.GetByID(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}
