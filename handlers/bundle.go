package handlers

import (
	"rotharc/middleware"
)

// HandlerBundle groups the endpoint handlers assembled in main.
type HandlerBundle struct {
	Sessions middleware.SessionResolver

	Auth         *AuthHandler
	Profile      *ProfileHandler
	Catalogue    *CatalogueHandler
	Wizard       *WizardHandler
	Reservations *ReservationHandler
	Testimonials *TestimonialHandler
	Legal        *LegalHandler
	Health       *HealthHandler
}
