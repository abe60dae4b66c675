package server

import (
	"github.com/gin-gonic/gin"

	"github.com/smartinix/order-service/internal/platform/auth"
	apierrors "github.com/smartinix/order-service/internal/shared/errors"
)

// RequireBearerToken rejects any request without a verifiable bearer token
// before a handler runs, and attaches the token's identity to the request
// context. Applied to every route; the API has no anonymous endpoints.
func RequireBearerToken(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.Verify(c.GetHeader("Authorization"))
		if err != nil {
			apierrors.AbortWithProblem(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}
