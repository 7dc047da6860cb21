package uibuilder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcofed/federation-api/internal/handler"
	"github.com/arcofed/federation-api/internal/middleware"
	"github.com/arcofed/federation-api/internal/model"
	builder "github.com/arcofed/federation-api/internal/uibuilder"
)

type Handler struct {
	store *builder.Store
	auth  *middleware.AuthMiddleware
}

func NewHandler(store *builder.Store, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{store: store, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ub := r.Group("/ui-builder", h.auth.RequireSuperAdmin())
	{
		ub.GET("", h.GetDocument)
		ub.GET("/:role", h.GetRole)
		ub.PUT("/:role", h.SaveRole)
		ub.POST("/:role/reset", h.ResetRole)
		ub.POST("/:role/custom-modules", h.AddCustomModule)
		ub.DELETE("/:role/custom-modules/:id", h.DeleteCustomModule)
	}
}

func (h *Handler) GetDocument(c *gin.Context) {
	doc, err := h.store.Document(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

func (h *Handler) GetRole(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	cfg, err := h.store.Get(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}

func (h *Handler) SaveRole(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	var cfg model.RoleUIBuilderConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		handler.BindError(c, err)
		return
	}
	cfg.Role = role

	if err := h.store.Save(c.Request.Context(), &cfg); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}

func (h *Handler) ResetRole(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	cfg, err := h.store.Reset(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}

func (h *Handler) AddCustomModule(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	var cm model.CustomModule
	if err := c.ShouldBindJSON(&cm); err != nil {
		handler.BindError(c, err)
		return
	}

	created, err := h.store.AddCustomModule(c.Request.Context(), role, cm)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) DeleteCustomModule(c *gin.Context) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	if err := h.store.DeleteCustomModule(c.Request.Context(), role, c.Param("id")); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": c.Param("id")}))
}
