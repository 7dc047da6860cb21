package simulation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcofed/federation-api/internal/handler"
	"github.com/arcofed/federation-api/internal/middleware"
	"github.com/arcofed/federation-api/internal/model"
	simulationService "github.com/arcofed/federation-api/internal/service/simulation"
)

type Handler struct {
	service *simulationService.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *simulationService.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

// RegisterRoutes gates every simulation endpoint on the caller's real
// role, so an active session can always be inspected and cleared.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sim := r.Group("/simulation", h.auth.RequireSuperAdmin())
	{
		sim.GET("", h.GetState)
		sim.POST("/role", h.StartRole)
		sim.POST("/user", h.StartUser)
		sim.DELETE("", h.Clear)
	}
}

func (h *Handler) GetState(c *gin.Context) {
	claims := middleware.Claims(c)
	state := h.service.Get(claims.UserID)
	if state == nil {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"active": false}))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"active": true, "state": state}))
}

type startRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *Handler) StartRole(c *gin.Context) {
	var req startRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	claims := middleware.Claims(c)
	state, err := h.service.StartRole(c.Request.Context(), claims.UserID, role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(state))
}

type startUserRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

func (h *Handler) StartUser(c *gin.Context) {
	var req startUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown role"))
		return
	}

	claims := middleware.Claims(c)
	state, err := h.service.StartUser(c.Request.Context(), claims.UserID, req.ExternalID, role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(state))
}

func (h *Handler) Clear(c *gin.Context) {
	claims := middleware.Claims(c)
	h.service.Clear(claims.UserID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"active": false}))
}
