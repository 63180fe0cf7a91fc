package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xborder/finance-engine/internal/application/finance"
)

// RateHandler serves rate version listing and reload
type RateHandler struct {
	BaseHandler
	rateService *finance.RateService
}

// NewRateHandler creates a new RateHandler
func NewRateHandler(rateService *finance.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// RegisterRoutes registers rate routes on the API group
func (h *RateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/finance/rates")
	{
		group.GET("/versions", h.ListVersions)
		group.GET("/reload", h.Reload)
	}
}

// ListVersions godoc
// @ID           listRateVersions
// @Summary      List rate versions
// @Description  Lists published rate versions, oldest first, flagging the active one
// @Tags         rates
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /finance/rates/versions [get]
func (h *RateHandler) ListVersions(c *gin.Context) {
	versions := h.rateService.Versions(c.Request.Context())
	h.Success(c, gin.H{"versions": versions, "count": len(versions)})
}

// Reload godoc
// @ID           reloadRates
// @Summary      Reload rate tables
// @Description  Fetches the rate store and publishes a new version; on failure the previous version keeps serving
// @Tags         rates
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Router       /finance/rates/reload [get]
func (h *RateHandler) Reload(c *gin.Context) {
	previous := ""
	for _, v := range h.rateService.Versions(c.Request.Context()) {
		if v.Active {
			previous = v.RateVersion
		}
	}

	info, err := h.rateService.Reload(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := gin.H{"version": info}
	if previous != "" {
		resp["previous_version"] = previous
	}
	h.Success(c, resp)
}
