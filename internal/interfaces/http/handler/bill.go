package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbilling "github.com/kirana/backend/internal/application/billing"
	"github.com/kirana/backend/internal/interfaces/http/middleware"
)

// BillHandler serves bill creation and reads
type BillHandler struct {
	BaseHandler
	billing *appbilling.Service
}

// NewBillHandler creates a bill handler
func NewBillHandler(billing *appbilling.Service, logger *zap.Logger) *BillHandler {
	return &BillHandler{BaseHandler: NewBaseHandler(logger), billing: billing}
}

// Create commits a sale. The optional Idempotency-Key header guards
// against duplicate submissions.
// POST /api/bills
func (h *BillHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req appbilling.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = c.GetHeader("Idempotency-Key")

	resp, err := h.billing.CreateBill(c.Request.Context(), tenantID, middleware.StoreCode(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SalesHistory returns a page of the sales reporting log
// GET /api/bills/history
func (h *BillHandler) SalesHistory(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.billing.ListSalesHistory(c.Request.Context(), tenantID, appbilling.ListBillsQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one bill
// GET /api/bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	billID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.billing.GetBill(c.Request.Context(), tenantID, billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a page of bills, newest first
// GET /api/bills
func (h *BillHandler) List(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.billing.ListBills(c.Request.Context(), tenantID, appbilling.ListBillsQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
