package handlers

import (
	"errors"
	"net/http"

	"rotharc/models"
	"rotharc/services/booking"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the booking wizard of the signed in user.
type WizardHandler struct {
	Wizard booking.WizardService
}

func NewWizardHandler(svc booking.WizardService) *WizardHandler {
	return &WizardHandler{Wizard: svc}
}

// wizardError carries the session view next to the error so the client can
// re-render the unchanged step.
type wizardError struct {
	utils.ErrorResponse
	View *booking.WizardView `json:"view,omitempty"`
}

func (h *WizardHandler) reply(c *gin.Context, view *booking.WizardView, err error) {
	if err == nil {
		c.JSON(http.StatusOK, view)
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError || view == nil {
		respondError(c, err)
		return
	}
	body := wizardError{
		ErrorResponse: utils.ErrorResponse{Message: http.StatusText(status), Details: err.Error()},
		View:          view,
	}
	var stepErr *booking.StepError
	if errors.As(err, &stepErr) {
		body.Message = stepErr.Reason
		body.Details = ""
		body.Fields = stepErr.Fields
	}
	c.JSON(status, body)
}

// Current handles GET /api/booking/wizard.
func (h *WizardHandler) Current(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.Wizard.Current(c.Request.Context(), userID)
	h.reply(c, view, err)
}

func (h *WizardHandler) SelectProduct(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Wizard.SelectProduct(c.Request.Context(), userID, req.ProductID)
	h.reply(c, view, err)
}

func (h *WizardHandler) SetSchedule(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Wizard.SetSchedule(c.Request.Context(), userID, req.Date, req.Time)
	h.reply(c, view, err)
}

// UpdateContact handles PATCH /api/booking/wizard/contact with one field.
func (h *WizardHandler) UpdateContact(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Wizard.UpdateContact(c.Request.Context(), userID, req.Field, req.Value)
	h.reply(c, view, err)
}

func (h *WizardHandler) SetPayment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		PaymentMethod models.PaymentMethod `json:"paymentMethod"`
		AgreedToTerms bool                 `json:"agreedToTerms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCard
	}
	view, err := h.Wizard.SetPayment(c.Request.Context(), userID, req.PaymentMethod, req.AgreedToTerms)
	h.reply(c, view, err)
}

// Advance handles POST /api/booking/wizard/advance. Leaving the payment step
// answers once the payment delay is over.
func (h *WizardHandler) Advance(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.Wizard.Advance(c.Request.Context(), userID)
	h.reply(c, view, err)
}

func (h *WizardHandler) Retreat(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.Wizard.Retreat(c.Request.Context(), userID)
	h.reply(c, view, err)
}

func (h *WizardHandler) Submit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.Wizard.Submit(c.Request.Context(), userID)
	h.reply(c, view, err)
}

func (h *WizardHandler) Reset(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.Wizard.Reset(c.Request.Context(), userID)
	h.reply(c, view, err)
}
