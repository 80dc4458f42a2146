package httpapi

import (
	"net/http"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body"))
		return
	}

	ord, err := h.orders.CreateOrder(c.Request.Context(), service.CheckoutInput{
		SubtotalCents:    req.SubtotalCents,
		TaxCents:         req.TaxCents,
		TipCents:         req.TipCents,
		TotalCents:       req.TotalCents,
		PaymentMethod:    req.PaymentMethod,
		CollectionMethod: models.CollectionMethod(req.CollectionMethod),
		CollectionDate:   req.CollectionDate,
		CollectionTime:   req.CollectionTime,
		PreferredName:    req.PreferredName,
		OrderNotes:       req.OrderNotes,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ord)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	f := service.OrderListFilter{Limit: limit, Offset: (page - 1) * limit}
	if v := c.Query("status"); v != "" {
		st := models.OrderStatus(v)
		f.Status = &st
	}

	list, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Order]{Items: list, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	page, limit := pagination(c)
	f := service.OrderListFilter{Limit: limit, Offset: (page - 1) * limit}
	if v := c.Query("status"); v != "" {
		st := models.OrderStatus(v)
		f.Status = &st
	}

	list, total, err := h.orders.ListAllOrders(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Order]{Items: list, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ord, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body"))
		return
	}

	ord, err := h.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req CancelOrderRequest
	// body is optional for cancellation
	_ = c.ShouldBindJSON(&req)

	ord, err := h.orders.CancelOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}
