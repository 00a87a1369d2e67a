package settings

import "dreamdecol/models"

// Well-known configuration keys.
const (
	KeyProductCategories      = "product.categories"
	KeyProductMaterials       = "product.materials"
	KeyProductCurrencies      = "product.currencies"
	KeyDefaultCurrency        = "product.defaultCurrency"
	KeyBookingTimeSlots       = "booking.timeSlots"
	KeyBookingServiceTypes    = "booking.serviceTypes"
	KeyBookingStatuses        = "booking.statuses"
	KeyAdminRoles             = "user.adminRoles"
	KeyDefaultAdminRole       = "user.defaultAdminRole"
	KeyUploadMaxFileSize      = "system.upload.maxFileSize"
	KeyUploadAllowedTypes     = "system.upload.allowedTypes"
	KeyActivityMaxFileSize    = "system.upload.activityMaxFileSize"
	KeyActivityAllowedTypes   = "system.upload.activityAllowedTypes"
	KeyCORSAllowedOrigins     = "system.cors.allowedOrigins"
	KeyPaginationDefaultLimit = "system.pagination.defaultLimit"
	KeyPaginationAdminLimit   = "system.pagination.adminLimit"
	KeyDefaultLanguage        = "localization.defaultLanguage"
	KeyTimezone               = "localization.timezone"
	KeyServerPort             = "system.server.port"
	KeyServerEnvironment      = "system.server.environment"
)

const (
	DefaultMaxFileSize         = 5 * 1024 * 1024
	DefaultActivityMaxFileSize = 10 * 1024 * 1024
	DefaultPageLimit           = 12
	DefaultAdminPageLimit      = 10
)

var (
	DefaultUploadTypes   = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	DefaultActivityTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "video/mp4", "video/webm"}
)

// Default is one entry of the factory configuration.
type Default struct {
	Key         string
	Value       interface{}
	Description string
	Category    string
}

// Defaults is the factory configuration inserted on first start and restored by Reset.
var Defaults = []Default{
	{KeyProductCategories, models.ProductCategories, "Available product categories", models.ConfigCategoryProduct},
	{KeyProductMaterials, []string{"Wood", "Metal", "Glass", "Fabric", "Leather", "Plastic", "Ceramic", "Bamboo"}, "Available product materials", models.ConfigCategoryProduct},
	{KeyProductCurrencies, models.Currencies, "Supported currencies", models.ConfigCategoryProduct},
	{KeyDefaultCurrency, models.DefaultCurrency, "Default currency for products", models.ConfigCategoryProduct},
	{KeyBookingTimeSlots, models.DefaultTimeSlots, "Available booking time slots", models.ConfigCategoryBooking},
	{KeyBookingServiceTypes, models.DefaultServiceTypes, "Available booking service types", models.ConfigCategoryBooking},
	{KeyBookingStatuses, models.BookingStatuses, "Available booking statuses", models.ConfigCategoryBooking},
	{KeyAdminRoles, models.AdminRoles, "Available admin user roles", models.ConfigCategoryUser},
	{KeyDefaultAdminRole, models.DefaultAdminRole, "Default role for new admin users", models.ConfigCategoryUser},
	{KeyUploadMaxFileSize, DefaultMaxFileSize, "Maximum file upload size in bytes", models.ConfigCategorySystem},
	{KeyUploadAllowedTypes, DefaultUploadTypes, "Allowed file types for uploads", models.ConfigCategorySystem},
	{KeyActivityMaxFileSize, DefaultActivityMaxFileSize, "Maximum file upload size for activities in bytes", models.ConfigCategorySystem},
	{KeyActivityAllowedTypes, DefaultActivityTypes, "Allowed file types for activity uploads", models.ConfigCategorySystem},
	{KeyCORSAllowedOrigins, []string{"*"}, "Allowed CORS origins", models.ConfigCategorySystem},
	{KeyPaginationDefaultLimit, DefaultPageLimit, "Default pagination limit", models.ConfigCategorySystem},
	{KeyPaginationAdminLimit, DefaultAdminPageLimit, "Default pagination limit for admin pages", models.ConfigCategorySystem},
	{KeyDefaultLanguage, "en", "Default language code", models.ConfigCategoryLocalization},
	{KeyTimezone, "UTC", "Default timezone", models.ConfigCategoryLocalization},
	{KeyServerPort, 5000, "Default server port", models.ConfigCategorySystem},
	{KeyServerEnvironment, "development", "Default server environment", models.ConfigCategorySystem},
}
