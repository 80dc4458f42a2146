package httpapi

import (
	"net/http"
	"strconv"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"
	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewProductHandler(catalog service.CatalogService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	f := repository.ProductListFilter{
		Brand:  c.Query("brand"),
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if v := c.Query("category"); v != "" {
		cat := models.ProductCategory(v)
		f.Category = &cat
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true"
		f.Featured = &b
	}
	if v := c.Query("onSale"); v != "" {
		b := v == "true"
		f.OnSale = &b
	}

	list, total, err := h.catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Product]{Items: list, Total: total, Page: page, Limit: limit})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body"))
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), service.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Category:       models.ProductCategory(req.Category),
		Brand:          req.Brand,
		PriceCents:     req.PriceCents,
		SalePriceCents: req.SalePriceCents,
		Images:         req.Images,
		THCPercent:     req.THCPercent,
		CBDPercent:     req.CBDPercent,
		WeightValue:    req.WeightValue,
		WeightUnit:     req.WeightUnit,
		Strain:         req.Strain,
		Effects:        req.Effects,
		Flavors:        req.Flavors,
		StockQuantity:  req.StockQuantity,
		IsActive:       active,
		IsFeatured:     req.IsFeatured,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ProductPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body"))
		return
	}

	patch := service.ProductPatch{
		Name:           req.Name,
		Description:    req.Description,
		Brand:          req.Brand,
		PriceCents:     req.PriceCents,
		SalePriceCents: req.SalePriceCents,
		ClearSalePrice: req.ClearSalePrice,
		Images:         req.Images,
		THCPercent:     req.THCPercent,
		CBDPercent:     req.CBDPercent,
		WeightValue:    req.WeightValue,
		WeightUnit:     req.WeightUnit,
		Strain:         req.Strain,
		Effects:        req.Effects,
		Flavors:        req.Flavors,
		StockQuantity:  req.StockQuantity,
		IsActive:       req.IsActive,
		IsFeatured:     req.IsFeatured,
	}
	if req.Category != nil {
		cat := models.ProductCategory(*req.Category)
		patch.Category = &cat
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.DeactivateProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
