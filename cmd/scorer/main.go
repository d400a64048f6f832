// Batch scorer: runs a CSV of raw property rows through the same
// prediction pipeline the API serves, recording estimates when a store is
// configured. Rows are scored concurrently under a weighted semaphore with
// an overall throughput cap.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"basha_price/internal/adapters/artifact"
	"basha_price/internal/adapters/observability"
	"basha_price/internal/app"
	"basha_price/internal/domain"
	"basha_price/internal/shared"
	mysqlrepo "basha_price/internal/storage/mysql"
)

var csvColumns = []string{"city", "location", "bedrooms", "bathrooms", "floor_area", "floor_no"}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: scorer <input.csv>")
	}
	path := os.Args[1]

	log.Info().
		Str("input", path).
		Int("workers", cfg.Workers).
		Int("rps", cfg.ScoreRPS).
		Msg("scorer starting")

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

	var store domain.EstimateStore
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		store = mysqlrepo.New(db)
	}

	// no cache: batch inputs rarely repeat
	svc := app.NewPredictionService(model, encoder, nil, store, 0)

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msg("open input failed")
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		log.Fatal().Err(err).Msg("read CSV header failed")
	}
	idx, err := columnIndex(header)
	if err != nil {
		log.Fatal().Err(err).Msg("bad CSV header")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	rl := rate.NewLimiter(rate.Limit(cfg.ScoreRPS), cfg.ScoreRPS)
	var wg sync.WaitGroup
	var scored, failed int64

	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("skipping malformed row")
			atomic.AddInt64(&failed, 1)
			continue
		}
		raw := rawFromRecord(idx, rec)

		if err := rl.Wait(ctx); err != nil {
			log.Fatal().Err(err).Msg("rate limiter wait failed")
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(line int, raw domain.RawRequest) {
			defer wg.Done()
			defer sem.Release(1)

			view, err := svc.Predict(ctx, raw)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				log.Warn().
					Int("line", line).
					Str("kind", domain.KindOf(err).String()).
					Err(err).
					Msg("row failed")
				return
			}
			atomic.AddInt64(&scored, 1)
			log.Info().
				Int("line", line).
				Str("city", view.City).
				Str("location", view.Location).
				Str("price", view.PredictedPrice).
				Msg("row scored")
		}(line, raw)
	}

	wg.Wait()
	log.Info().
		Int64("scored", atomic.LoadInt64(&scored)).
		Int64("failed", atomic.LoadInt64(&failed)).
		Msg("scoring completed")
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, errors.New("missing column " + col)
		}
	}
	return idx, nil
}

func rawFromRecord(idx map[string]int, rec []string) domain.RawRequest {
	get := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	return domain.RawRequest{
		City:      get("city"),
		Location:  get("location"),
		Bedrooms:  get("bedrooms"),
		Bathrooms: get("bathrooms"),
		FloorArea: get("floor_area"),
		FloorNo:   get("floor_no"),
	}
}
