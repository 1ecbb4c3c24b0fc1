package config

import (
	"os"
	"strings"
)

type Config struct {
	Port           string
	JWTSecret      string
	RestaurantName string
	CurrencyCode   string
	AdminEmail     string
	AdminPassword  string
	ExportDir      string
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		RestaurantName: getEnv("RESTAURANT_NAME", "Mazoon Grill"),
		CurrencyCode:   getEnv("CURRENCY_CODE", "OMR"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@mazoongrill.om"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		ExportDir:      getEnv("EXPORT_DIR", "exports"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
