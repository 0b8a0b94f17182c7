package handlers

import (
	"net/http"

	"rotharc/models"
	"rotharc/services/booking"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	Reservations booking.ReservationService
}

func NewReservationHandler(svc booking.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: svc}
}

// ListMine handles GET /api/bookings.
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	bookings, err := h.Reservations.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelMine handles POST /api/bookings/:id/cancel.
func (h *ReservationHandler) CancelMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	b, err := h.Reservations.CancelForUser(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *ReservationHandler) ListAll(c *gin.Context) {
	bookings, err := h.Reservations.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateStatus handles PATCH /api/admin/bookings/:id/status.
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Reservations.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
