// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
)

// Tool output limit defaults.
const (
	DefaultSearchLimitValue = 20
	DefaultQueryLimitValue  = 1000
)

// Processing safety cap defaults.
const (
	MaxQuerySessionsValue = 1000
	MaxInferSessionsValue = 1000
)

// Config holds all configuration for the MCP server.
type Config struct {
	UnzipWorkers      int  // SAZMCP_UNZIP_WORKERS, default 8
	BodyCacheMaxItems int  // SAZMCP_BODY_CACHE_MAX_ITEMS, default 256
	ToolMaxBodyBytes  int  // SAZMCP_TOOL_MAX_BODY_BYTES, default 262144 (256KB)
	IndexHeaderValues bool // SAZMCP_INDEX_HEADER_VALUES, default true

	// Tool output limits
	DefaultSearchLimit int // SAZMCP_DEFAULT_SEARCH_LIMIT
	DefaultQueryLimit  int // SAZMCP_DEFAULT_QUERY_LIMIT

	// Processing safety caps
	MaxQuerySessions int // SAZMCP_MAX_QUERY_SESSIONS
	MaxInferSessions int // SAZMCP_MAX_INFER_SESSIONS

	// Logging configuration
	LogLevel      string // SAZMCP_LOG_LEVEL, default "info"
	LogFile       string // SAZMCP_LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // SAZMCP_LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // SAZMCP_LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // SAZMCP_LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // SAZMCP_LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		UnzipWorkers:      getEnvInt("SAZMCP_UNZIP_WORKERS", 8),
		BodyCacheMaxItems: getEnvInt("SAZMCP_BODY_CACHE_MAX_ITEMS", 256),
		ToolMaxBodyBytes:  getEnvInt("SAZMCP_TOOL_MAX_BODY_BYTES", 262144),
		IndexHeaderValues: getEnvBool("SAZMCP_INDEX_HEADER_VALUES", true),

		DefaultSearchLimit: getEnvInt("SAZMCP_DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		DefaultQueryLimit:  getEnvInt("SAZMCP_DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),

		MaxQuerySessions: getEnvInt("SAZMCP_MAX_QUERY_SESSIONS", MaxQuerySessionsValue),
		MaxInferSessions: getEnvInt("SAZMCP_MAX_INFER_SESSIONS", MaxInferSessionsValue),

		LogLevel:      getEnvString("SAZMCP_LOG_LEVEL", "info"),
		LogFile:       getEnvString("SAZMCP_LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("SAZMCP_LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("SAZMCP_LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("SAZMCP_LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("SAZMCP_LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
