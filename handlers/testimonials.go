package handlers

import (
	"net/http"

	"rotharc/middleware"
	"rotharc/models"
	"rotharc/services/testimonial"
	"rotharc/services/user"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TestimonialHandler struct {
	Testimonials testimonial.TestimonialService
	Users        user.UserService
	logger       *zap.Logger
}

func NewTestimonialHandler(svc testimonial.TestimonialService, users user.UserService, logger *zap.Logger) *TestimonialHandler {
	return &TestimonialHandler{Testimonials: svc, Users: users, logger: logger}
}

// ListApproved handles GET /api/testimonials.
func (h *TestimonialHandler) ListApproved(c *gin.Context) {
	items, err := h.Testimonials.ListApproved(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Submit handles POST /api/testimonials. The author is the signed in user.
func (h *TestimonialHandler) Submit(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}
	var req testimonial.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	author := testimonial.Author{
		UserID: current.ID,
		Name:   models.User{FirstName: current.FirstName, LastName: current.LastName}.FullName(),
	}
	if profile, err := h.Users.GetProfile(c.Request.Context(), current.ID); err == nil {
		author.AvatarURL = profile.AvatarURL
	} else {
		h.logger.Warn("Testimonial without avatar", zap.String("userID", current.ID), zap.Error(err))
	}

	created, err := h.Testimonials.Submit(c.Request.Context(), author, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TestimonialHandler) ListAll(c *gin.Context) {
	items, err := h.Testimonials.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *TestimonialHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status models.TestimonialStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Testimonials.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}

func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.Testimonials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
