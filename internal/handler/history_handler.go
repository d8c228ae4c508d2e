package handler

import (
	"net/http"

	"paymentapi/internal/models"
	"paymentapi/internal/repository"
	"paymentapi/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	history   *repository.HistoryRepository
	lifecycle *service.LifecycleService
	logger    *zap.Logger
}

func NewHistoryHandler(history *repository.HistoryRepository, lifecycle *service.LifecycleService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, lifecycle: lifecycle, logger: logger}
}

func (h *HistoryHandler) List(c *gin.Context) {
	list, err := h.history.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *HistoryHandler) Create(c *gin.Context) {
	var req historyCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	var rec models.PaymentHistory
	req.apply(&rec, false)
	rec.Notes = req.Notes
	if err := h.history.Create(c.Request.Context(), &rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *HistoryHandler) Get(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *HistoryHandler) Update(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	var req historyRequest
	if !bindJSON(c, &req) {
		return
	}
	req.apply(rec, c.Request.Method == http.MethodPatch)
	if err := h.history.Update(c.Request.Context(), rec); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.history.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HistoryHandler) AddNote(c *gin.Context) {
	rec, ok := h.load(c)
	if !ok {
		return
	}
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.lifecycle.AddNote(c.Request.Context(), rec, req.Note); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note added successfully"})
}

func (h *HistoryHandler) load(c *gin.Context) (*models.PaymentHistory, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	rec, err := h.history.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return rec, true
}
