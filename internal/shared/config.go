package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	ModelPath   string
	EncoderPath string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	RatePerSec  int
	RateBurst   int
	Workers     int
	ScoreRPS    int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		ModelPath:   env("MODEL_PATH", "model.json"),
		EncoderPath: env("ENCODER_PATH", "target_encoder.json"),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		RatePerSec:  atoi("RATE_PER_SEC", 50),
		RateBurst:   atoi("RATE_BURST", 100),
		Workers:     atoi("SCORER_WORKERS", 8),
		ScoreRPS:    atoi("SCORER_RPS", 100),
	}
	if c.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN is empty, estimate history disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
