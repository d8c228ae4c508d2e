package handler

import (
	"errors"
	"net/http"
	"strconv"

	"paymentapi/internal/domain"
	"paymentapi/internal/repository"
	"paymentapi/pkg/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a domain error to its HTTP status. Details stay in the log.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		sigErr *domain.SignatureError
		verr   *domain.ValidationError
		gwErr  *payment.GatewayError
		opErr  *domain.PaymentOperationError
	)
	switch {
	case errors.As(err, &sigErr):
		status := http.StatusUnauthorized
		if errors.Is(err, domain.ErrSignatureMissing) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": sigErr.Error()})
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message}
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &gwErr):
		logger.Error("gateway error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment gateway error"})
	case errors.As(err, &opErr):
		logger.Error("payment operation error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment operation failed"})
	case errors.Is(err, repository.ErrStaleRecord):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
