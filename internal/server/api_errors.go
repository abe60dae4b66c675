package server

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/smartinix/order-service/internal/domains/orders/ports"
	apierrors "github.com/smartinix/order-service/internal/shared/errors"
)

// respondOrderServiceError maps order service failures to RFC 7807 responses.
func respondOrderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ports.ErrVersionConflict):
		apierrors.Respond(c, apierrors.ErrConflict.WithDetail(err.Error()))
	default:
		apierrors.RespondError(c, err)
	}
}

func respondValidationError(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
}
