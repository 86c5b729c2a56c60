package storage

import "os"

// Config configures the ledger's Postgres connection, read from the
// environment with the teacher's getEnv/default idiom.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func LoadConfig() Config {
	return Config{
		Host:     getEnv("UQCHESS_LEDGER_DB_HOST", "localhost"),
		Port:     getEnv("UQCHESS_LEDGER_DB_PORT", "5432"),
		User:     getEnv("UQCHESS_LEDGER_DB_USER", "uqchess"),
		Password: getEnv("UQCHESS_LEDGER_DB_PASSWORD", ""),
		Database: getEnv("UQCHESS_LEDGER_DB_NAME", "uqchess"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
