package handler

import (
	"fmt"
	"net/http"

	"paymentapi/internal/models"
	"paymentapi/internal/repository"
	"paymentapi/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments  *repository.PaymentRepository
	lifecycle *service.LifecycleService
	gateway   *service.GatewayService
	// callbackBaseURL overrides the scheme+host taken from the request when set
	callbackBaseURL string
	logger          *zap.Logger
}

func NewPaymentHandler(
	payments *repository.PaymentRepository,
	lifecycle *service.LifecycleService,
	gateway *service.GatewayService,
	callbackBaseURL string,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		payments:        payments,
		lifecycle:       lifecycle,
		gateway:         gateway,
		callbackBaseURL: callbackBaseURL,
		logger:          logger,
	}
}

func (h *PaymentHandler) List(c *gin.Context) {
	list, err := h.payments.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}
	var p models.Payment
	req.apply(&p, false)
	if err := h.payments.Create(c.Request.Context(), &p); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update serves both PUT and PATCH.
func (h *PaymentHandler) Update(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.apply(p, c.Request.Method == http.MethodPatch)
	if err := h.payments.Update(c.Request.Context(), p); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PaymentHandler) Process(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.lifecycle.ProcessPayment(c.Request.Context(), p); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment processed successfully"})
}

func (h *PaymentHandler) MarkFailed(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.lifecycle.MarkAsFailed(c.Request.Context(), p); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment marked as failed"})
}

// InitiatePayment opens a checkout with the gateway and returns its link.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	data, err := h.gateway.Initiate(c.Request.Context(), p, h.callbackURL(c, p.TransactionID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Payment Link",
		"data": gin.H{
			"authorization_url": data.AuthorizationURL,
			"reference":         data.Reference,
		},
	})
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	data, paid, err := h.gateway.Verify(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !paid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment failed", "data": data})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully", "data": data})
}

func (h *PaymentHandler) callbackURL(c *gin.Context, id uint) string {
	base := h.callbackBaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return fmt.Sprintf("%s/api/v1/payments/%d/process", base, id)
}

func (h *PaymentHandler) load(c *gin.Context) (*models.Payment, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	p, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return p, true
}
