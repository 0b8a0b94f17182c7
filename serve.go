package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rotharc/config"
	"rotharc/cron"
	"rotharc/database"
	bookingRepo "rotharc/database/repository/booking"
	productRepo "rotharc/database/repository/product"
	testimonialRepo "rotharc/database/repository/testimonial"
	userRepoPkg "rotharc/database/repository/user"
	"rotharc/handlers"
	"rotharc/middleware"
	"rotharc/routes"
	"rotharc/services/booking"
	"rotharc/services/catalogue"
	"rotharc/services/notification"
	"rotharc/services/session"
	"rotharc/services/storage"
	"rotharc/services/testimonial"
	"rotharc/services/user"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the confirmation worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func wizardStore(cfg config.Config) booking.SessionStore {
	if cfg.WizardStore == "memory" {
		return booking.NewMemorySessionStore()
	}
	return booking.NewRedisSessionStore(utils.GetCacheClient(), cfg.WizardTTL)
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if err := database.InitDB(); err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Close(closeCtx); err != nil {
			logger.Warn("Failed to close MongoDB", zap.Error(err))
		}
	}()
	if err := utils.InitRedis(); err != nil {
		return err
	}

	// repositories.
	db := database.DB()
	userRepo := userRepoPkg.NewMongoUserRepo(db, logger)
	products := productRepo.NewMongoProductRepo(db, logger)
	bookings := bookingRepo.NewMongoBookingRepo(db, logger)
	testimonials := testimonialRepo.NewMongoTestimonialRepo(db)

	sessions := session.NewManager(userRepo, utils.GetAuthCacheClient(), cfg.JWTSecret, cfg.TokenTTL, logger)
	if err := sessions.Open(ctx); err != nil {
		return err
	}
	defer sessions.Close()

	notifier := notification.NewQueueNotifier(cron.RedisOpt(), logger)
	defer notifier.Close()

	// services.
	catalogueService := catalogue.NewCatalogueService(products, logger)
	wizardService := booking.NewWizardService(wizardStore(cfg), products, bookings, notifier,
		booking.WizardConfig{PaymentDelay: cfg.BookingPaymentDelay, Location: config.Location()}, logger)
	reservationService := booking.NewReservationService(bookings, logger)
	testimonialService := testimonial.NewTestimonialService(testimonials, logger)
	userService := user.NewUserService(userRepo, sessions, storage.NewAvatarStore(logger), logger,
		reservationService.DeleteForUser,
		testimonialService.DeleteForUser,
		wizardService.Discard,
	)

	handlerBundle := &handlers.HandlerBundle{
		Sessions:     sessions,
		Auth:         handlers.NewAuthHandler(userService),
		Profile:      handlers.NewProfileHandler(userService),
		Catalogue:    handlers.NewCatalogueHandler(catalogueService),
		Wizard:       handlers.NewWizardHandler(wizardService),
		Reservations: handlers.NewReservationHandler(reservationService),
		Testimonials: handlers.NewTestimonialHandler(testimonialService, userService, logger),
		Legal:        handlers.NewLegalHandler(),
		Health:       handlers.NewHealthHandler(),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins)

	utils.StartHealthMonitor(ctx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	worker := cron.NewConfirmationWorker(cron.RedisOpt(), userRepo, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server is shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
