package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/kirana/backend/internal/application/catalog"
)

// ProductHandler serves catalog management endpoints
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(products *appcatalog.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{BaseHandler: NewBaseHandler(logger), products: products}
}

// Create adds a product to the catalog
// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.products.CreateProduct(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns a page of the catalog
// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	resp, err := h.products.ListProducts(c.Request.Context(), tenantID, appcatalog.ListProductsQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one product
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	productID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.products.GetProduct(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByBarcode looks up a product by barcode
// GET /api/products/barcode/:barcode
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	resp, err := h.products.GetProductByBarcode(c.Request.Context(), tenantID, c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update edits a product's catalog fields
// PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	productID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.products.UpdateProduct(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustStock sets a product's on-hand quantity
// PATCH /api/products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	productID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	var req appcatalog.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.products.AdjustStock(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock returns products below their alert threshold
// GET /api/products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	resp, err := h.products.ListLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": resp})
}

// Delete removes a product from the catalog
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	productID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), tenantID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
