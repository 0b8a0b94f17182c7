package routes

import (
	"net/http"
	"time"

	"rotharc/handlers"
	"rotharc/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign up, sign in and sign out.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/logout", middleware.RequireSession(hb.Sessions), hb.Auth.Logout)
	}
}

// RegisterProfileRoutes registers the signed in user's profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.RequireSession(hb.Sessions))
		api.GET("", hb.Profile.Get)
		api.PUT("", hb.Profile.Update)
		api.DELETE("", hb.Profile.Delete)
		api.POST("/avatar", hb.Profile.UploadAvatar)
	}
}

// RegisterCatalogueRoutes registers the public product catalogue.
func RegisterCatalogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/products")
	{
		api.GET("", hb.Catalogue.List)
		api.GET("/:id", hb.Catalogue.Get)
	}
}

// RegisterBookingRoutes registers the booking wizard and the user's reservations.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	wizard := r.Group("/api/booking/wizard")
	{
		wizard.Use(middleware.RequireSession(hb.Sessions))
		wizard.GET("", hb.Wizard.Current)
		wizard.PUT("/product", hb.Wizard.SelectProduct)
		wizard.PUT("/schedule", hb.Wizard.SetSchedule)
		wizard.PATCH("/contact", hb.Wizard.UpdateContact)
		wizard.PUT("/payment", hb.Wizard.SetPayment)
		wizard.POST("/advance", hb.Wizard.Advance)
		wizard.POST("/retreat", hb.Wizard.Retreat)
		wizard.POST("/submit", hb.Wizard.Submit)
		wizard.POST("/reset", hb.Wizard.Reset)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.RequireSession(hb.Sessions))
		bookings.GET("", hb.Reservations.ListMine)
		bookings.POST("/:id/cancel", hb.Reservations.CancelMine)
	}
}

// RegisterTestimonialRoutes registers the public list and authenticated submission.
func RegisterTestimonialRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/testimonials")
	{
		api.GET("", hb.Testimonials.ListApproved)
		api.POST("", middleware.RequireSession(hb.Sessions), hb.Testimonials.Submit)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.RequireSession(hb.Sessions), middleware.RequireAdmin())
		admin.GET("/bookings", hb.Reservations.ListAll)
		admin.PATCH("/bookings/:id/status", hb.Reservations.UpdateStatus)

		admin.POST("/products", hb.Catalogue.Create)
		admin.PUT("/products/:id", hb.Catalogue.Update)
		admin.DELETE("/products/:id", hb.Catalogue.Delete)

		admin.GET("/testimonials", hb.Testimonials.ListAll)
		admin.PATCH("/testimonials/:id/status", hb.Testimonials.SetStatus)
		admin.DELETE("/testimonials/:id", hb.Testimonials.Delete)
	}
}

// RegisterLegalRoutes registers the public legal documents.
func RegisterLegalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/legal")
	{
		api.GET("", hb.Legal.List)
		api.GET("/:id", hb.Legal.Get)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Check)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowOrigins []string) {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !containsWildcard(allowOrigins),
		MaxAge:           12 * time.Hour,
	}))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterCatalogueRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterTestimonialRoutes(r, hb)
	RegisterLegalRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
