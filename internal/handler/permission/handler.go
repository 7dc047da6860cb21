package permission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcofed/federation-api/internal/handler"
	"github.com/arcofed/federation-api/internal/middleware"
	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/resolver"
	permissionService "github.com/arcofed/federation-api/internal/service/permissions"
	sidebarService "github.com/arcofed/federation-api/internal/service/sidebar"
)

type Handler struct {
	permissions *permissionService.Service
	sidebars    *sidebarService.Service
	resolver    *resolver.Resolver
	auth        *middleware.AuthMiddleware
}

func NewHandler(permissions *permissionService.Service, sidebars *sidebarService.Service, res *resolver.Resolver, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{permissions: permissions, sidebars: sidebars, resolver: res, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	perms := r.Group("/permissions")
	{
		perms.GET("/my-sidebar", h.GetMySidebar)

		perms.GET("/sidebar/:role", h.GetSidebar)
		perms.POST("/sidebar/:role", h.auth.RequireSuperAdmin(), h.SaveSidebar)
		perms.POST("/sidebar/reset/:role", h.auth.RequireSuperAdmin(), h.ResetSidebar)

		perms.GET("/matrix", h.GetMatrix)
		perms.GET("/matrix/:role", h.GetRoleMatrix)
		perms.PUT("/matrix/:role/:moduleId", h.auth.RequireSuperAdmin(), h.UpdatePermission)
		perms.POST("/matrix/reset/:role", h.auth.RequireSuperAdmin(), h.ResetMatrix)

		perms.GET("/ui-settings/:role", h.GetUISettings)
		perms.PUT("/ui-settings/:role", h.auth.RequireSuperAdmin(), h.SaveUISettings)
		perms.POST("/ui-settings/reset/:role", h.auth.RequireSuperAdmin(), h.ResetUISettings)
	}
}

// GetMySidebar returns the caller's effective sidebar module list,
// after permission patches and organization overrides.
func (h *Handler) GetMySidebar(c *gin.Context) {
	role := middleware.EffectiveRole(c)
	modules := h.resolver.EffectiveSidebar(c.Request.Context(), role, middleware.OrgID(c))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"role": role, "modules": modules}))
}

func (h *Handler) GetSidebar(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	layout, err := h.sidebars.Get(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(layout))
}

type saveSidebarRequest struct {
	Groups []model.SidebarGroup `json:"groups" binding:"required"`
}

func (h *Handler) SaveSidebar(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	var req saveSidebarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	layout, err := h.sidebars.Save(c.Request.Context(), role, req.Groups)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(layout))
}

func (h *Handler) ResetSidebar(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	layout, err := h.sidebars.Reset(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(layout))
}

func (h *Handler) GetMatrix(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.permissions.Matrix(c.Request.Context())))
}

func (h *Handler) GetRoleMatrix(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	record, err := h.permissions.RoleMatrix(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

type updatePermissionRequest struct {
	Action  string `json:"action" binding:"required"`
	Allowed *bool  `json:"allowed" binding:"required"`
}

func (h *Handler) UpdatePermission(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	var req updatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	action, ok := model.ParseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown action"))
		return
	}

	record, err := h.permissions.UpdatePermission(c.Request.Context(), role, c.Param("moduleId"), action, *req.Allowed)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) ResetMatrix(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	record, err := h.permissions.ResetRole(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) GetUISettings(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	settings, err := h.permissions.UISettings(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(settings))
}

func (h *Handler) SaveUISettings(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	var settings model.RoleUISettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		handler.BindError(c, err)
		return
	}
	settings.Role = role

	saved, err := h.permissions.SaveUISettings(c.Request.Context(), &settings)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(saved))
}

func (h *Handler) ResetUISettings(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	settings, err := h.permissions.ResetUISettings(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(settings))
}
