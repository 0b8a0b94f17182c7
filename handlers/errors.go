package handlers

import (
	"errors"
	"net/http"

	"rotharc/database/repository"
	"rotharc/middleware"
	"rotharc/services/booking"
	"rotharc/services/catalogue"
	"rotharc/services/storage"
	"rotharc/services/testimonial"
	"rotharc/services/user"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var stepErr *booking.StepError
	var validationErr *user.ValidationError
	switch {
	case errors.As(err, &stepErr), errors.As(err, &validationErr),
		errors.Is(err, catalogue.ErrInvalidProduct),
		errors.Is(err, testimonial.ErrInvalidTestimonial):
		return http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrUnknownProduct), errors.Is(err, booking.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrProcessing),
		errors.Is(err, booking.ErrNoPreviousStep),
		errors.Is(err, booking.ErrNoNextStep),
		errors.Is(err, booking.ErrResetNotAllowed),
		errors.Is(err, booking.ErrAlreadySubmitted),
		errors.Is(err, booking.ErrWrongStep),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, booking.ErrSubmissionFailed):
		return http.StatusBadGateway
	case errors.Is(err, booking.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Internal errors are logged and
// not echoed to the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, status, "Internal Server Error", "")
		return
	}

	var stepErr *booking.StepError
	var validationErr *user.ValidationError
	switch {
	case errors.As(err, &stepErr) && len(stepErr.Fields) > 0:
		utils.JSONFieldErrors(c, status, stepErr.Reason, stepErr.Fields)
	case errors.As(err, &validationErr):
		utils.JSONFieldErrors(c, status, "Invalid request", map[string]string{validationErr.Field: validationErr.Message})
	default:
		utils.JSONError(c, status, http.StatusText(status), err.Error())
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
}

// requireUser returns the session user or aborts with 401.
func requireUser(c *gin.Context) (string, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return "", false
	}
	return u.ID, true
}
