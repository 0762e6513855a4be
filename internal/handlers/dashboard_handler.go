package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/vportella/landfolio/internal/errors"
	"github.com/vportella/landfolio/internal/services"
)

// DashboardHandler handles the aggregate overview endpoint.
type DashboardHandler struct {
	service services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview handles GET /api/v1/dashboard.
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		if handleStoreError(c, err) {
			return
		}
		apierrors.InternalServerError(c, "Failed to compute dashboard", err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
