// File: dreamdecol/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dreamdecol/config"
	"dreamdecol/database"
	"dreamdecol/database/repository"
	"dreamdecol/handlers"
	"dreamdecol/middleware"
	"dreamdecol/routes"
	"dreamdecol/services/activity"
	"dreamdecol/services/admin"
	"dreamdecol/services/booking"
	"dreamdecol/services/catalog"
	"dreamdecol/services/contact"
	"dreamdecol/services/rating"
	"dreamdecol/services/settings"
	"dreamdecol/services/storage"
	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	redisClient := utils.InitCache()

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repos := repository.NewRepositories(database.DB())
	if err := repos.EnsureIndexes(startCtx); err != nil {
		logger.Fatal("main: failed to create indexes", zap.Error(err))
	}

	settingsService := settings.NewSettingsService(repos.Configurations)
	if created, err := settingsService.EnsureDefaults(startCtx); err != nil {
		logger.Warn("main: failed to seed default configurations", zap.Error(err))
	} else if created > 0 {
		logger.Info("main: default configurations created", zap.Int("count", created))
	}

	store := mustStorage(logger)
	mediaService := storage.NewMediaService(store, settingsService)

	adminService := admin.NewAdminService(
		repos.Admins,
		admin.NewSessionCache(redisClient),
		settingsService,
		config.AppConfig.JWTSecret,
		config.AppConfig.JWTExpire,
	)
	if username := config.AppConfig.BootstrapAdminUsername; username != "" {
		created, err := adminService.EnsureBootstrapAdmin(startCtx, username, config.AppConfig.BootstrapAdminPassword)
		if err != nil {
			logger.Fatal("main: failed to create bootstrap admin", zap.Error(err))
		}
		if created {
			logger.Info("main: bootstrap superadmin created", zap.String("username", username))
		}
	}
	cancel()

	bookingService := booking.NewBookingService(repos.Bookings, settingsService)
	ratingService := rating.NewRatingService(repos.Ratings, repos.Products)
	catalogService := catalog.NewCatalogService(repos.Products, settingsService)
	activityService := activity.NewActivityService(repos.Activities, mediaService)
	contactService := contact.NewContactService(repos.Contacts, repos.Products)

	monitor := utils.NewHealthMonitor(database.MongoClient, redisClient)
	if err := monitor.Start("@every 60s"); err != nil {
		logger.Warn("main: health monitor not scheduled", zap.Error(err))
	}

	handlers.RegisterValidators()
	handlerBundle := &handlers.HandlerBundle{
		Auth:     adminService,
		Booking:  handlers.NewBookingHandler(bookingService),
		Rating:   handlers.NewRatingHandler(ratingService),
		Admin:    handlers.NewAdminHandler(adminService),
		Product:  handlers.NewProductHandler(catalogService),
		Activity: handlers.NewActivityHandler(activityService),
		Contact:  handlers.NewContactHandler(contactService),
		Config:   handlers.NewConfigHandler(settingsService),
		Upload:   handlers.NewUploadHandler(mediaService),
		Health:   handlers.NewHealthHandler(monitor),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	if err := middleware.TrustProxies(router, config.SplitList(config.AppConfig.TrustedProxies)); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}

	origins := config.SplitList(config.AppConfig.CORSOrigin)
	if len(origins) == 0 {
		origins = settingsService.Snapshot().Strings(settings.KeyCORSAllowedOrigins, []string{"*"})
	}
	opts := routes.Options{
		AllowedOrigins:      origins,
		WriteLimitPerMinute: config.AppConfig.MaxRequestsPerMin,
	}
	if local, ok := store.(*storage.LocalStore); ok {
		opts.UploadDir = local.Dir
	}
	routes.RegisterRoutes(router, handlerBundle, opts)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", config.GetEnv()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	monitor.Stop()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("main: server stopped gracefully")
}

// mustStorage picks Cloudinary when CLOUDINARY_URL is set and local disk otherwise.
func mustStorage(logger *zap.Logger) storage.StorageService {
	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary storage", zap.Error(err))
	}
	if cld != nil {
		logger.Info("main: media stored on Cloudinary", zap.String("cloud", cld.Config.Cloud.CloudName))
		return storage.NewCloudinaryStore(cld)
	}
	local, err := storage.NewLocalStore(config.AppConfig.UploadPath)
	if err != nil {
		logger.Fatal("main: failed to prepare upload directory", zap.Error(err))
	}
	logger.Info("main: media stored on local disk", zap.String("dir", local.Dir))
	return local
}
