package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	CacheDir         string
	DatabaseURL      string
	OllamaHost       string
	OllamaModel      string
	WorkerCount      int
	TargetAge        int
	CleanRetainRatio float64
	PlayerFacingOnly bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		CacheDir:         getEnv("CACHE_DIR", ".mc_lang_cache"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "phi4"),
		WorkerCount:      getEnvInt("WORKER_COUNT", 4),
		TargetAge:        getEnvInt("TARGET_AGE", 10),
		CleanRetainRatio: getEnvFloat("CLEAN_MIN_RETAIN_RATIO", 0.30),
		PlayerFacingOnly: getEnvBool("PLAYER_FACING_ONLY", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
