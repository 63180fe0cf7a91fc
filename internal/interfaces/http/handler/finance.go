package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/xborder/finance-engine/internal/application/finance"
	"github.com/xborder/finance-engine/internal/interfaces/http/dto"
	"github.com/xborder/finance-engine/internal/interfaces/http/middleware"
)

// FinanceHandler serves the shipping cost and profit margin endpoints
type FinanceHandler struct {
	BaseHandler
	shippingService *finance.ShippingService
	profitService   *finance.ProfitService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(shippingService *finance.ShippingService, profitService *finance.ProfitService) *FinanceHandler {
	return &FinanceHandler{
		shippingService: shippingService,
		profitService:   profitService,
	}
}

// RegisterRoutes registers finance routes on the API group
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/finance")
	{
		group.POST("/shipping/calculate", h.CalculateShipping)
		group.POST("/shipping/calculate-multiple", h.CompareShipping)
		group.POST("/shipping/batch", h.BatchShipping)
		group.POST("/profit/calculate", h.CalculateProfit)
		group.POST("/profit/batch", h.BatchProfit)
	}
}

// bindJSON binds the request body, answering 400 with field details on
// validation failures and ERR_INVALID_JSON on malformed bodies.
func (h *FinanceHandler) bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			middleware.HandleValidationError(c, err)
			return false
		}
		h.Error(c, 400, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// CalculateShipping godoc
// @ID           calculateShipping
// @Summary      Calculate shipping cost
// @Description  Prices one package against one carrier service; an empty service_type resolves to the platform default
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body ShippingCalculateRequest true "Shipping calculation request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /finance/shipping/calculate [post]
func (h *FinanceHandler) CalculateShipping(c *gin.Context) {
	var req ShippingCalculateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.shippingService.CalculateOne(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CompareShipping godoc
// @ID           compareShipping
// @Summary      Compare shipping services
// @Description  Prices one package across candidate services and tags the recommended option; service_types is a CSV list, empty compares every service the platform offers
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        service_types query string false "CSV list of service types"
// @Param        request body ShippingCalculateRequest true "Shipping calculation request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /finance/shipping/calculate-multiple [post]
func (h *FinanceHandler) CompareShipping(c *gin.Context) {
	var req ShippingCalculateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	var serviceTypes []string
	if raw := c.Query("service_types"); raw != "" {
		for _, svc := range strings.Split(raw, ",") {
			if svc = strings.TrimSpace(svc); svc != "" {
				serviceTypes = append(serviceTypes, svc)
			}
		}
	}

	cmp, err := h.shippingService.CompareServices(c.Request.Context(), req.ToDomain(), serviceTypes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cmp)
}

// BatchShipping godoc
// @ID           batchShipping
// @Summary      Calculate shipping cost for many packages
// @Description  Prices many requests in one call; item failures are reported per item, only a malformed top-level body is a client error
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body ShippingBatchRequest true "Batch shipping request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /finance/shipping/batch [post]
func (h *FinanceHandler) BatchShipping(c *gin.Context) {
	var req ShippingBatchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	items, err := h.shippingService.CalculateBatch(c.Request.Context(), toShippingDomain(req.Requests))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"items": items, "count": len(items)})
}

// CalculateProfit godoc
// @ID           calculateProfit
// @Summary      Calculate profit margin
// @Description  Computes platform fee, shipping cost, margin figures and price suggestions for one product
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body ProfitCalculateRequest true "Profit calculation request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /finance/profit/calculate [post]
func (h *FinanceHandler) CalculateProfit(c *gin.Context) {
	var req ProfitCalculateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.profitService.Calculate(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BatchProfit godoc
// @ID           batchProfit
// @Summary      Calculate profit for many products
// @Description  Runs many profit calculations in one call; item failures are reported per item
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body ProfitBatchRequest true "Batch profit request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /finance/profit/batch [post]
func (h *FinanceHandler) BatchProfit(c *gin.Context) {
	var req ProfitBatchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	items, err := h.profitService.CalculateBatch(c.Request.Context(), toProfitDomain(req.Requests))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"items": items, "count": len(items)})
}
