package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arcofed/federation-api/internal/handler"
	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/resolver"
	authService "github.com/arcofed/federation-api/internal/service/auth"
	simulationService "github.com/arcofed/federation-api/internal/service/simulation"
)

// Context keys set by Authenticate.
const (
	ctxClaims        = "claims"
	ctxEffectiveRole = "effectiveRole"
	ctxSimulating    = "simulating"
	ctxOrgID         = "orgID"
)

type AuthMiddleware struct {
	authService *authService.Service
	simulation  *simulationService.Service
	resolver    *resolver.Resolver
}

func NewAuthMiddleware(auth *authService.Service, sim *simulationService.Service, res *resolver.Resolver) *AuthMiddleware {
	return &AuthMiddleware{
		authService: auth,
		simulation:  sim,
		resolver:    res,
	}
}

// Authenticate verifies the bearer token and resolves the caller's
// effective identity once. While a super admin has an active simulation
// session, the simulated role is the effective role everywhere
// downstream; the real role stays available through the claims.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ctxClaims, claims)

		role := claims.Role
		if claims.Role == model.RoleSuperAdmin {
			if state := m.simulation.Get(claims.UserID); state != nil {
				role = state.EffectiveRole()
				c.Set(ctxSimulating, true)
			}
		}
		c.Set(ctxEffectiveRole, role)

		if raw := c.GetHeader("X-Organization-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(ctxOrgID, id)
			}
		}

		c.Next()
	}
}

// RequireSuperAdmin gates simulation and admin-only endpoints on the
// caller's REAL role, so a simulated session can always be cleared.
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil || claims.Role != model.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("super admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission checks the effective role's permission tuple for a
// module and action.
func (m *AuthMiddleware) RequirePermission(module string, action model.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := EffectiveRole(c)
		if !m.resolver.HasPermission(c.Request.Context(), role, module, action) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Claims returns the verified token claims, or nil outside the
// authenticated chain.
func Claims(c *gin.Context) *model.TokenClaims {
	if v, ok := c.Get(ctxClaims); ok {
		return v.(*model.TokenClaims)
	}
	return nil
}

// EffectiveRole returns the simulated role when a simulation is active,
// otherwise the caller's real role.
func EffectiveRole(c *gin.Context) model.Role {
	if v, ok := c.Get(ctxEffectiveRole); ok {
		return v.(model.Role)
	}
	return ""
}

// OrgID returns the organization scope from the request, or nil.
func OrgID(c *gin.Context) *uuid.UUID {
	if v, ok := c.Get(ctxOrgID); ok {
		id := v.(uuid.UUID)
		return &id
	}
	return nil
}

// Simulating reports whether the caller is inside a simulation session.
func Simulating(c *gin.Context) bool {
	return c.GetBool(ctxSimulating)
}
