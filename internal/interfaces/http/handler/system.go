package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xborder/finance-engine/internal/application/finance"
	"github.com/xborder/finance-engine/internal/infrastructure/persistence"
	"github.com/xborder/finance-engine/internal/interfaces/http/dto"
)

// SystemHandler serves health and readiness checks
type SystemHandler struct {
	BaseHandler
	rateService *finance.RateService
	db          *persistence.Database
	appName     string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(rateService *finance.RateService, db *persistence.Database, appName string) *SystemHandler {
	return &SystemHandler{
		rateService: rateService,
		db:          db,
		appName:     appName,
	}
}

// RegisterRoutes registers the health route on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/finance/health", h.Health)
}

// RegisterRoot registers the health route directly on the engine
func (h *SystemHandler) RegisterRoot(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// Health godoc
// @ID           getFinanceHealth
// @Summary      Service health
// @Description  Reports readiness (a rate version is loaded) and rate-store reachability
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /finance/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ratesLoaded := h.rateService.Loaded()
	dbOK := h.db.Ping() == nil

	status := "ok"
	code := http.StatusOK
	if !ratesLoaded || !dbOK {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, dto.Response{
		Success: status == "ok",
		Data: gin.H{
			"service":  h.appName,
			"status":   status,
			"ready":    ratesLoaded,
			"database": dbOK,
		},
	})
}
