package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	HFToken             string
	ScriptModel         string
	ScriptBaseURL       string
	ScriptTimeout       time.Duration
	VideoModel          string
	VideoBaseURL        string
	VideoTimeout        time.Duration
	StoragePath         string
	DatabaseURL         string
	GeoIPDBPath         string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	ShutdownGracePeriod time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. HF_TOKEN is required: the generation collaborators
// cannot be called without it, so startup fails fast when it is absent.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "3000"),
		HFToken:             os.Getenv("HF_TOKEN"),
		ScriptModel:         getEnv("SCRIPT_MODEL", "meta-llama/Meta-Llama-3-70B-Instruct"),
		ScriptBaseURL:       getEnv("SCRIPT_BASE_URL", "https://api-inference.huggingface.co"),
		ScriptTimeout:       time.Second * time.Duration(getEnvInt("SCRIPT_TIMEOUT_SECONDS", 120)),
		VideoModel:          getEnv("VIDEO_MODEL", "Wan-AI/Wan2.2-TI2V-5B"),
		VideoBaseURL:        getEnv("VIDEO_BASE_URL", "https://router.huggingface.co/novita/v3/hf"),
		VideoTimeout:        time.Second * time.Duration(getEnvInt("VIDEO_TIMEOUT_SECONDS", 600)),
		StoragePath:         getEnv("STORAGE_PATH", filepath.Join(os.TempDir(), "shortforge")),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		GeoIPDBPath:         os.Getenv("GEOIP_DB_PATH"),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		ShutdownGracePeriod: time.Second * time.Duration(getEnvInt("SHUTDOWN_GRACE_SECONDS", 15)),
	}

	if cfg.HFToken == "" {
		return nil, fmt.Errorf("HF_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
