package config

import "os"

// Config is read once from the environment at startup.
type Config struct {
	Port           string
	DataDir        string
	ExportFile     string
	AdminUser      string
	AdminPass      string
	JWTSecret      string
	WhatsAppNumber string
	RedisAddr      string
}

func Load() Config {
	return Config{
		Port:           getenv("PORT", "8080"),
		DataDir:        getenv("DATA_DIR", "data"),
		ExportFile:     getenv("EXPORT_FILE", "orders.xlsx"),
		AdminUser:      getenv("ADMIN_USER", "admin"),
		AdminPass:      getenv("ADMIN_PASS", "admin123"),
		JWTSecret:      getenv("JWT_SECRET", "secret"),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "5579999088593"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
