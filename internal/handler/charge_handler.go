package handler

import (
	"net/http"

	"paymentapi/internal/models"
	"paymentapi/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChargeHandler struct {
	charges *repository.ChargeRepository
	logger  *zap.Logger
}

func NewChargeHandler(charges *repository.ChargeRepository, logger *zap.Logger) *ChargeHandler {
	return &ChargeHandler{charges: charges, logger: logger}
}

type chargeResponse struct {
	*models.PaymentCharge
	TotalAmount string `json:"total_amount"`
}

func toChargeResponse(ch *models.PaymentCharge) chargeResponse {
	return chargeResponse{PaymentCharge: ch, TotalAmount: ch.Total().StringFixed(2)}
}

func (h *ChargeHandler) List(c *gin.Context) {
	list, err := h.charges.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	out := make([]chargeResponse, 0, len(list))
	for i := range list {
		out = append(out, toChargeResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ChargeHandler) Create(c *gin.Context) {
	var req chargeRequest
	if !bindJSON(c, &req) {
		return
	}
	var rec models.PaymentCharge
	req.apply(&rec, false)
	if err := h.charges.Create(c.Request.Context(), &rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toChargeResponse(&rec))
}

func (h *ChargeHandler) Get(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toChargeResponse(rec))
}

func (h *ChargeHandler) Update(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	var req chargeRequest
	if !bindJSON(c, &req) {
		return
	}
	req.apply(rec, c.Request.Method == http.MethodPatch)
	if err := h.charges.Update(c.Request.Context(), rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toChargeResponse(rec))
}

func (h *ChargeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.charges.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChargeHandler) CalculateTotal(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_amount": rec.Total().StringFixed(2)})
}

func (h *ChargeHandler) load(c *gin.Context) (*models.PaymentCharge, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	rec, err := h.charges.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return rec, true
}
