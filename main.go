// File: detailing/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"detailing/config"
	"detailing/cron"
	"detailing/database"
	"detailing/database/repository"
	"detailing/database/repository/memory"
	"detailing/handlers"
	"detailing/middleware"
	"detailing/routes"
	"detailing/services/booking"
	"detailing/services/cart"
	"detailing/services/catalog"
	"detailing/services/storage"
	"detailing/services/user"
	"detailing/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// repositories is the set of stores the services are built on.
type repositories struct {
	cart    repository.CartRepository
	catalog repository.CatalogRepository
	booking repository.BookingRepository
	user    repository.UserRepository
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()

	// repositories.
	var repos repositories
	var catalogCache catalog.Cache
	inMemory := strings.HasPrefix(config.AppConfig.DatabaseURL, "memory://")
	if inMemory {
		logger.Sugar().Warn("main: using in-memory repositories; data is lost on restart")
		repos = repositories{
			cart:    memory.NewCartRepo(),
			catalog: memory.NewCatalogRepo(),
			booking: memory.NewBookingRepo(),
			user:    memory.NewUserRepo(),
		}
	} else {
		database.InitDB()
		repos = repositories{
			cart:    repository.NewMongoCartRepo(),
			catalog: repository.NewMongoCatalogRepo(),
			booking: repository.NewMongoBookingRepo(),
			user:    repository.NewMongoUserRepo(),
		}
		cacheClient := utils.GetCacheClient()
		catalogCache = catalog.NewRedisCache(cacheClient, config.AppConfig.ServicesCacheTTL)
		utils.StartHealthMonitor(ctx, cacheClient, database.MongoClient, time.Minute)
	}

	pictureStorage, err := utils.Cloudinary()
	if err != nil {
		if !inMemory {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
		}
		logger.Sugar().Warnf("main: picture uploads disabled: %v", err)
		pictureStorage = storage.DisabledStorage{}
	}

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Repo:   repos.catalog,
		Cache:  catalogCache,
		Logger: logger.Named("catalog"),
	}
	cartService := &cart.DefaultCartService{
		Repo:    repos.cart,
		Catalog: catalogService,
		Logger:  logger.Named("cart"),
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         repos.booking,
		Catalog:      catalogService,
		Cart:         cartService,
		TravelBuffer: time.Duration(config.AppConfig.TravelBufferMinutes) * time.Minute,
		Horizon:      time.Duration(config.AppConfig.BusyHorizonDays) * 24 * time.Hour,
		Logger:       logger.Named("booking"),
	}
	pictureService := &booking.DefaultPictureService{
		Repo:    repos.booking,
		Storage: pictureStorage,
		Logger:  logger.Named("pictures"),
	}
	userService := &user.DefaultUserService{
		Repo:        repos.user,
		TokenTTL:    config.AppConfig.TokenTTL,
		AdminEmails: config.AppConfig.Admins(),
	}

	completer := &cron.BookingCompleter{Repo: repos.booking, Every: 10 * time.Minute, Logger: logger.Named("cron")}
	completer.Start(ctx)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewAuthHandler(userService, config.AppConfig.TokenTTL, config.IsProduction()),
		handlers.NewCartHandler(cartService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewServicesHandler(catalogService),
		handlers.NewUploadHandler(pictureService),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.Origins())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "4000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
