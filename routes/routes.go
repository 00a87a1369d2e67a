package routes

import (
	"net/http"
	"time"

	"dreamdecol/handlers"
	"dreamdecol/middleware"
	"dreamdecol/services/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the router settings that come from configuration.
type Options struct {
	// AllowedOrigins for CORS; empty or "*" allows any origin.
	AllowedOrigins []string
	// WriteLimitPerMinute bounds public POSTs per client IP; zero disables the limiter.
	WriteLimitPerMinute int
	// UploadDir is served at /uploads when set.
	UploadDir string
}

// RegisterBookingRoutes sets up the consultation booking endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, limit gin.HandlerFunc) {
	booking := api.Group("/booking")
	{
		booking.POST("", limit, hb.Booking.CreateBookingHandler)
		booking.GET("/availability", hb.Booking.AvailabilityHandler)

		admin := booking.Group("/admin")
		admin.Use(middleware.Protect(hb.Auth))
		admin.GET("", hb.Booking.ListBookingsHandler)
		admin.GET("/stats", hb.Booking.BookingStatsHandler)
		admin.PUT("/:id", middleware.RequireAdmin(), hb.Booking.UpdateBookingHandler)
		admin.DELETE("/:id", middleware.RequireAdmin(), hb.Booking.DeleteBookingHandler)
	}
}

// RegisterRatingRoutes sets up product rating endpoints.
func RegisterRatingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, limit gin.HandlerFunc) {
	ratings := api.Group("/ratings")
	{
		ratings.POST("", limit, hb.Rating.SubmitRatingHandler)
		ratings.GET("/:productId", hb.Rating.RatingDetailsHandler)
		ratings.GET("/:productId/summary", hb.Rating.RatingSummaryHandler)
		ratings.GET("/:productId/distribution", hb.Rating.RatingDistributionHandler)
		ratings.GET("/:productId/stats", hb.Rating.RatingStatsHandler)
		ratings.DELETE("/:ratingId", middleware.Protect(hb.Auth), middleware.RequireAdmin(), hb.Rating.DeleteRatingHandler)
	}
}

// RegisterAdminRoutes sets up back-office auth, user management and activities.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, limit gin.HandlerFunc) {
	protect := middleware.Protect(hb.Auth)

	auth := api.Group("/admin/auth")
	{
		auth.POST("/login", limit, hb.Admin.LoginHandler)
		auth.POST("/register", protect, middleware.RequireSuperAdmin(), hb.Admin.RegisterHandler)
		auth.POST("/logout", protect, hb.Admin.LogoutHandler)
		auth.GET("/me", protect, hb.Admin.MeHandler)
	}

	users := api.Group("/admin/users")
	{
		users.Use(protect, middleware.RequireAdmin())
		users.GET("", hb.Admin.ListUsersHandler)
		users.GET("/:id", hb.Admin.GetUserHandler)
		users.PUT("/:id", hb.Admin.UpdateUserHandler)
		users.DELETE("/:id", hb.Admin.DeleteUserHandler)
	}

	activities := api.Group("/admin/activities")
	{
		activities.Use(protect, middleware.RequireAdmin())
		activities.GET("", hb.Activity.ListActivitiesHandler)
		activities.POST("", hb.Activity.CreateActivityHandler)
		activities.PUT("/:id", hb.Activity.UpdateActivityHandler)
		activities.DELETE("/:id", hb.Activity.DeleteActivityHandler)
	}
}

// RegisterProductRoutes sets up the public catalog and its admin surface.
func RegisterProductRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	products := api.Group("/products")
	{
		admin := products.Group("/admin")
		admin.Use(middleware.Protect(hb.Auth), middleware.RequireAdmin())
		admin.GET("", hb.Product.AdminListProductsHandler)
		admin.POST("", hb.Product.CreateProductHandler)
		admin.PUT("/:id", hb.Product.UpdateProductHandler)
		admin.DELETE("/:id", hb.Product.DeleteProductHandler)

		products.GET("", hb.Product.ListProductsHandler)
		products.GET("/featured", hb.Product.FeaturedProductsHandler)
		products.GET("/categories", hb.Product.CategoriesHandler)
		products.GET("/:id", hb.Product.GetProductHandler)
		products.GET("/:id/related", hb.Product.RelatedProductsHandler)
	}
}

// RegisterActivityRoutes sets up the public activity feed.
func RegisterActivityRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	activities := api.Group("/activities")
	{
		activities.GET("", hb.Activity.ListActivitiesHandler)
		activities.GET("/range", hb.Activity.RangeActivitiesHandler)
		activities.GET("/search", hb.Activity.SearchActivitiesHandler)
	}
}

// RegisterContactRoutes sets up the contact form and its inbox.
func RegisterContactRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, limit gin.HandlerFunc) {
	contact := api.Group("/contact")
	{
		contact.POST("", limit, hb.Contact.CreateContactHandler)

		admin := contact.Group("/admin")
		admin.Use(middleware.Protect(hb.Auth), middleware.RequireAdmin())
		admin.GET("", hb.Contact.ListContactsHandler)
		admin.GET("/:id", hb.Contact.GetContactHandler)
		admin.PUT("/:id/read", hb.Contact.MarkReadHandler)
		admin.PUT("/:id/unread", hb.Contact.MarkUnreadHandler)
		admin.DELETE("/:id", hb.Contact.DeleteContactHandler)
	}
}

// RegisterConfigRoutes sets up the configuration store.
func RegisterConfigRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	cfg := api.Group("/config")
	{
		cfg.GET("/public/:category", hb.Config.PublicConfigHandler)

		admin := cfg.Group("")
		admin.Use(middleware.Protect(hb.Auth), middleware.RequireAdmin())
		admin.GET("", hb.Config.ListConfigsHandler)
		admin.POST("", hb.Config.CreateConfigHandler)
		admin.POST("/reset", middleware.RequireSuperAdmin(), hb.Config.ResetConfigHandler)
		admin.GET("/:key", hb.Config.GetConfigHandler)
		admin.PUT("/:key", hb.Config.UpdateConfigHandler)
		admin.DELETE("/:key", hb.Config.DeleteConfigHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if opts.WriteLimitPerMinute > 0 {
		limit = middleware.RateLimitMiddleware(opts.WriteLimitPerMinute)
	}

	r.GET("/health", hb.Health.HealthHandler)
	r.POST("/upload", middleware.Protect(hb.Auth), hb.Upload.UploadProductImageHandler)
	if opts.UploadDir != "" {
		r.Static(storage.UploadsRoute, opts.UploadDir)
	}

	api := r.Group("/api")
	api.GET("", hb.Health.IndexHandler)
	RegisterBookingRoutes(api, hb, limit)
	RegisterRatingRoutes(api, hb, limit)
	RegisterAdminRoutes(api, hb, limit)
	RegisterProductRoutes(api, hb)
	RegisterActivityRoutes(api, hb)
	RegisterContactRoutes(api, hb, limit)
	RegisterConfigRoutes(api, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
