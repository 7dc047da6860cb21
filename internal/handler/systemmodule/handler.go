package systemmodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcofed/federation-api/internal/handler"
	"github.com/arcofed/federation-api/internal/middleware"
	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/service/modules"
)

type Handler struct {
	service *modules.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *modules.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sm := r.Group("/system-modules")
	{
		sm.GET("", h.ListModules)
		sm.GET("/config", h.GetOrgConfig)
		sm.POST("/config", h.auth.RequireSuperAdmin(), h.UpsertOrgConfig)
	}
}

// ListModules returns the full static module catalog.
func (h *Handler) ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Registry()))
}

func (h *Handler) GetOrgConfig(c *gin.Context) {
	orgID := middleware.OrgID(c)
	if orgID == nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("missing organization scope"))
		return
	}

	configs, err := h.service.ListOrgConfigs(c.Request.Context(), *orgID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(configs))
}

type orgConfigRequest struct {
	Module    string         `json:"module" binding:"required"`
	IsEnabled *bool          `json:"is_enabled" binding:"required"`
	Config    model.JSONBlob `json:"config"`
}

func (h *Handler) UpsertOrgConfig(c *gin.Context) {
	orgID := middleware.OrgID(c)
	if orgID == nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("missing organization scope"))
		return
	}

	var req orgConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	cfg, err := h.service.UpsertOrgConfig(c.Request.Context(), *orgID, req.Module, *req.IsEnabled, req.Config)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}
