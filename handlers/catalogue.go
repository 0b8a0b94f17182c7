package handlers

import (
	"net/http"
	"strconv"

	"rotharc/models"
	"rotharc/services/catalogue"

	"github.com/gin-gonic/gin"
)

type CatalogueHandler struct {
	Catalogue catalogue.CatalogueService
}

func NewCatalogueHandler(svc catalogue.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{Catalogue: svc}
}

// List handles GET /api/products?category=&featured=&new=.
func (h *CatalogueHandler) List(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))
	isNew, _ := strconv.ParseBool(c.Query("new"))
	filter := models.ProductFilter{
		Category:     c.Query("category"),
		FeaturedOnly: featured,
		NewOnly:      isNew,
	}
	products, err := h.Catalogue.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogueHandler) Get(c *gin.Context) {
	p, err := h.Catalogue.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogueHandler) Create(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Catalogue.Create(c.Request.Context(), &p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogueHandler) Update(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.Catalogue.Update(c.Request.Context(), c.Param("id"), &p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CatalogueHandler) Delete(c *gin.Context) {
	if err := h.Catalogue.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
