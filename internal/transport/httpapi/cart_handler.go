package httpapi

import (
	"net/http"

	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart service.CartService
	log  *zap.Logger
}

func NewCartHandler(cart service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

func (h *CartHandler) Get(c *gin.Context) {
	sum, err := h.cart.Get(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body"))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid productId"))
		return
	}

	sum, err := h.cart.AddItem(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	var req CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body"))
		return
	}

	sum, err := h.cart.UpdateItem(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	sum, err := h.cart.RemoveItem(c.Request.Context(), productID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
