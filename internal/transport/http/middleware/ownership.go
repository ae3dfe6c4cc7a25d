package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/usecase"
)

// OwnershipCheck reports whether the principal owns the resource with the
// given identifier.
type OwnershipCheck func(ctx context.Context, principal *usecase.Principal, resourceID string) bool

// RequireAdmin allows only principals with the ADMIN scope.
func RequireAdmin(authz *usecase.OwnershipAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		if !authz.IsAdmin(principal) {
			abortWithCode(c, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS")
			return
		}
		c.Next()
	}
}

// RequireAdminOrSelf allows admins, or the user whose id matches the given
// path parameter.
func RequireAdminOrSelf(authz *usecase.OwnershipAuthorizer, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		if !authz.IsAdminOrOwner(principal, c.Param(param)) {
			abortWithCode(c, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS")
			return
		}
		c.Next()
	}
}

// RequireAdminOrOwner allows admins, or principals the check confirms as
// the owner of the resource addressed by the path parameter. Missing
// resources and lookup failures deny.
func RequireAdminOrOwner(authz *usecase.OwnershipAuthorizer, param string, check OwnershipCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		if authz.IsAdmin(principal) {
			c.Next()
			return
		}
		if check == nil || !check(c.Request.Context(), principal, c.Param(param)) {
			abortWithCode(c, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS")
			return
		}
		c.Next()
	}
}
