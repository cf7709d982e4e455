package config

import (
	"os"
	"strconv"
)

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	DSN string // Data Source Name
}

type StorefrontConfig struct {
	CatalogPath string
	// Cron spec (with seconds field) for the periodic stock audit sweep.
	AuditSpec string
}

// LoadStateDBConfig resolves the DSN for the session state store. The default
// is a local SQLite file next to the binary; point STATE_DB_DSN at a
// postgres:// URL to use PostgreSQL instead.
func LoadStateDBConfig() DBConfig {
	dsn := "file:storefront.db"
	if envDSN := os.Getenv("STATE_DB_DSN"); envDSN != "" {
		dsn = envDSN
	}
	return DBConfig{DSN: dsn}
}

func LoadServerConfig(defaultPort string) ServerConfig {
	port := defaultPort
	if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
		port = envPort
	}
	return ServerConfig{Port: ":" + port}
}

func LoadStorefrontConfig() StorefrontConfig {
	return StorefrontConfig{
		CatalogPath: GetEnv("CATALOG_PATH", "catalog.yaml"),
		AuditSpec:   GetEnv("STOCK_AUDIT_SPEC", "0 */5 * * * *"),
	}
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	strValue := GetEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
