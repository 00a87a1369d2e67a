package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTExpire         time.Duration `mapstructure:"JWT_EXPIRE"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Comma separated lists.
	CORSOrigin     string `mapstructure:"CORS_ORIGIN"`
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// Redis configuration. An empty address disables the session cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Media storage.
	UploadPath    string `mapstructure:"UPLOAD_PATH"`
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	// First superadmin, created on startup when no superadmin exists.
	BootstrapAdminUsername string `mapstructure:"BOOTSTRAP_ADMIN_USERNAME"`
	BootstrapAdminPassword string `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`
}

var AppConfig Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "dreamdecol")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRE", "24h")
	viper.SetDefault("CORS_ORIGIN", "")
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("UPLOAD_PATH", "uploads")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "")
	viper.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if AppConfig.JWTSecret == "" {
		if IsProduction() {
			log.Fatal("JWT_SECRET must be set in production")
		}
		log.Println("JWT_SECRET not set, using development secret")
		AppConfig.JWTSecret = "dev-secret-change-me"
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SplitList turns a comma separated setting into a trimmed slice, dropping empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
