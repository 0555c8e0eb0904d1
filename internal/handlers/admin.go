// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/georgeY2002/E-Commerce/internal/services"
	"github.com/georgeY2002/E-Commerce/internal/utils"
)

type AdminHandler struct {
	orderService   *services.OrderService
	reportService  *services.ReportService
	productService *services.ProductService
}

func NewAdminHandler(orderService *services.OrderService, reportService *services.ReportService, productService *services.ProductService) *AdminHandler {
	return &AdminHandler{
		orderService:   orderService,
		reportService:  reportService,
		productService: productService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/earnings
func (h *AdminHandler) GetEarnings(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	buckets, err := h.reportService.GetEarningsBreakdown(period)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, buckets)
}

// GET /admin/top-products
func (h *AdminHandler) GetTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, err := h.reportService.GetTopProducts(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	filter := services.OrderFilter{
		PaginationParams: utils.GetPaginationParams(c),
		Status:           c.Query("status"),
		PaymentStatus:    c.Query("paymentStatus"),
	}

	result, err := h.reportService.GetOrders(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// PATCH /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.AdminUpdateStatus(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Reconciliation may have moved stock
	h.productService.InvalidateListings(c.Request.Context())

	utils.SuccessResponse(c, order)
}
