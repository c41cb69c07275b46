package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tomasdma/donation-platform/internal/constants"
	apierrors "github.com/tomasdma/donation-platform/internal/errors"
)

// RequirePermission gates an endpoint on a named permission. No
// identity yields 401; an identity whose current permission set lacks
// the permission yields 403. The two are never conflated.
func RequirePermission(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !identity.HasPermission(name) {
			apierrors.Forbidden(c, "Missing permission: "+name)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireOwnerRole is the coarser role-name check layered on top of
// the permission model, reserved for the bootstrap Owner role.
func RequireOwnerRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if identity.RoleName() != constants.RoleOwner {
			apierrors.Forbidden(c, "Owner role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
