package handler

import (
	"net/http"

	"paymentapi/internal/models"
	"paymentapi/internal/repository"
	"paymentapi/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RefundHandler struct {
	refunds   *repository.RefundRepository
	lifecycle *service.LifecycleService
	logger    *zap.Logger
}

func NewRefundHandler(refunds *repository.RefundRepository, lifecycle *service.LifecycleService, logger *zap.Logger) *RefundHandler {
	return &RefundHandler{refunds: refunds, lifecycle: lifecycle, logger: logger}
}

func (h *RefundHandler) List(c *gin.Context) {
	list, err := h.refunds.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RefundHandler) Create(c *gin.Context) {
	var req refundRequest
	if !bindJSON(c, &req) {
		return
	}
	var rec models.PaymentRefund
	req.apply(&rec, false)
	if err := h.refunds.Create(c.Request.Context(), &rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *RefundHandler) Get(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RefundHandler) Update(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	var req refundRequest
	if !bindJSON(c, &req) {
		return
	}
	req.apply(rec, c.Request.Method == http.MethodPatch)
	if err := h.refunds.Update(c.Request.Context(), rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RefundHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.refunds.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RefundHandler) ProcessRefund(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.lifecycle.ProcessRefund(c.Request.Context(), rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":               "Refund processed successfully",
		"refund_transaction_id": rec.RefundTransactionID,
	})
}

func (h *RefundHandler) load(c *gin.Context) (*models.PaymentRefund, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	rec, err := h.refunds.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return rec, true
}
