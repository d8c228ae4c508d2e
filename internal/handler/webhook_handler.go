package handler

import (
	"errors"
	"io"
	"net/http"

	"paymentapi/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	paystackSignatureHeader = "X-Paystack-Signature"
	maxWebhookBody          = 1 << 20
)

type WebhookHandler struct {
	gateway *service.GatewayService
	logger  *zap.Logger
}

func NewWebhookHandler(gateway *service.GatewayService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{gateway: gateway, logger: logger}
}

// Paystack verifies the signature over the raw body before anything is parsed.
func (h *WebhookHandler) Paystack(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.gateway.HandleWebhook(c.Request.Context(), body, c.GetHeader(paystackSignatureHeader)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed successfully"})
}
