package handlers

import (
	"net/http"

	"rotharc/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe.
type HealthHandler struct {
	Status func() utils.HealthStatus
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{Status: utils.GetHealthStatus}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := h.Status()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "message": "Hi, I'm Rotharc", "dependencies": status})
}
