package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// TrustedProxies may set the client address through X-Forwarded-For.
	// Empty means the socket address is always used.
	TrustedProxies []string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret     string
	JWTExpiration time.Duration

	LogLevel string
	LogMode  string
	LogFile  string

	// Superuser is created at startup when SuperuserEmail is set and unused.
	SuperuserEmail     string
	SuperuserPassword  string
	SuperuserFirstName string
	SuperuserLastName  string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "authors")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "authors.db")
	v.SetDefault("JWT_SECRET", "your-secret-key-change-this-in-production")
	v.SetDefault("JWT_EXPIRATION", "30m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MODE", "prod")
	v.SetDefault("LOG_FILE", "logs/app.log")
	v.SetDefault("SUPERUSER_FIRST_NAME", "Admin")
	v.SetDefault("SUPERUSER_LAST_NAME", "User")

	cfg := &Config{
		Port:           v.GetString("PORT"),
		GinMode:        v.GetString("GIN_MODE"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiration:  v.GetDuration("JWT_EXPIRATION"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogMode:        v.GetString("LOG_MODE"),
		LogFile:        v.GetString("LOG_FILE"),

		SuperuserEmail:     v.GetString("SUPERUSER_EMAIL"),
		SuperuserPassword:  v.GetString("SUPERUSER_PASSWORD"),
		SuperuserFirstName: v.GetString("SUPERUSER_FIRST_NAME"),
		SuperuserLastName:  v.GetString("SUPERUSER_LAST_NAME"),
	}
	if cfg.JWTExpiration <= 0 {
		cfg.JWTExpiration = 30 * time.Minute
	}

	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
