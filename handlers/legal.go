package handlers

import (
	"net/http"

	"rotharc/services/legal"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
)

// LegalHandler serves the published legal documents.
type LegalHandler struct{}

func NewLegalHandler() *LegalHandler {
	return &LegalHandler{}
}

func (h *LegalHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, legal.Sections())
}

func (h *LegalHandler) Get(c *gin.Context) {
	section, ok := legal.Find(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Document not found", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, section)
}
