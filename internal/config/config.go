package config

import (
	"os"
	"strconv"
)

type Config struct {
	DBPath string
	Seed   bool
	LogSQL bool
}

func Load() *Config {
	return &Config{
		DBPath: getEnv("FLEETDASH_DB", "fleetdash.db"),
		Seed:   getEnvAsBool("FLEETDASH_SEED", true),
		LogSQL: getEnvAsBool("FLEETDASH_LOG_SQL", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
