package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"basha_price/internal/adapters/artifact"
	server "basha_price/internal/adapters/http_server"
	"basha_price/internal/adapters/observability"
	redisad "basha_price/internal/adapters/redis"
	"basha_price/internal/app"
	"basha_price/internal/domain"
	"basha_price/internal/shared"
	mysqlrepo "basha_price/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// collaborators: the process must not accept requests without both.
	model, err := artifact.LoadModel(cfg.ModelPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ModelPath).Msg("model artifact load failed")
	}
	if err := model.VerifySchema(domain.Schema); err != nil {
		log.Fatal().Err(err).Msg("model schema mismatch")
	}
	encoder, err := artifact.LoadEncoder(cfg.EncoderPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.EncoderPath).Msg("encoder artifact load failed")
	}
	log.Info().Msg("model and encoder artifacts loaded")

	// optional estimate history
	var store domain.EstimateStore
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		store = mysqlrepo.New(db)
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	svc := app.NewPredictionService(model, encoder, cache, store, cfg.CacheTTL)

	// http
	srv := server.New(rate.Limit(cfg.RatePerSec), cfg.RateBurst)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
