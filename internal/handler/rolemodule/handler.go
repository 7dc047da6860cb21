package rolemodule

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
	rm := r.Group("/role-modules")
	{
		rm.GET("/my-modules", h.GetMyModules)
		rm.GET("/:role", h.GetRoleModules)
		rm.PUT("/:role/:moduleId", h.auth.RequireSuperAdmin(), h.UpdateRoleModule)
		rm.POST("/:role/batch", h.auth.RequireSuperAdmin(), h.BatchUpdate)
		rm.POST("/:role/:moduleId/sub-modules/:code/toggle", h.auth.RequireSuperAdmin(), h.ToggleSubModule)
	}
}

func (h *Handler) GetRoleModules(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	result, err := h.service.GetRoleModules(c.Request.Context(), role, middleware.OrgID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

// GetMyModules resolves modules for the caller's effective role, which
// is the simulated role while a simulation session is active.
func (h *Handler) GetMyModules(c *gin.Context) {
	role := middleware.EffectiveRole(c)
	result, err := h.service.GetRoleModules(c.Request.Context(), role, middleware.OrgID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

type updateRequest struct {
	IsEnabled *bool          `json:"is_enabled" binding:"required"`
	Config    model.JSONBlob `json:"config"`
}

func (h *Handler) UpdateRoleModule(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	cfg, err := h.service.UpdateRoleModuleConfig(c.Request.Context(), role, c.Param("moduleId"), *req.IsEnabled, req.Config)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}

type batchRequest struct {
	Updates []modules.ModuleUpdate `json:"updates" binding:"required,dive"`
}

func (h *Handler) BatchUpdate(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.service.BatchUpdateRoleModuleConfigs(c.Request.Context(), role, req.Updates); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"updated": len(req.Updates)}))
}

func (h *Handler) ToggleSubModule(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	cfg, err := h.service.ToggleSubModule(c.Request.Context(), role, c.Param("moduleId"), c.Param("code"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}
