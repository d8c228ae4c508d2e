package handler

import (
	"net/http"
	"time"

	"paymentapi/config"

	"github.com/gin-gonic/gin"
)

type InfoHandler struct {
	info *config.InfoConfig
	now  func() time.Time
}

func NewInfoHandler(info *config.InfoConfig) *InfoHandler {
	return &InfoHandler{info: info, now: time.Now}
}

func (h *InfoHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":            h.info.Title,
		"description":      h.info.Description,
		"version":          h.info.Version,
		"email":            h.info.Email,
		"github_url":       h.info.GithubURL,
		"current_datetime": h.now().UTC().Format("2006-01-02T15:04:05Z"),
	})
}

func (h *InfoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
