package domain

import (
	"context"
	"time"
)

// Model is the trained regression collaborator, loaded once at startup
// and safe for concurrent read-only use.
type Model interface {
	Predict(ctx context.Context, row []float64) (float64, error)
}

// Encoder is the fitted target-encoding collaborator mapping a location
// name to the numeric statistic learned at training time.
type Encoder interface {
	Transform(ctx context.Context, category string) (float64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// EstimateStore records served estimates. Writes are best-effort from the
// pipeline's point of view; a store failure never fails a prediction.
type EstimateStore interface {
	InsertEstimate(ctx context.Context, e Estimate) error
	ListEstimates(ctx context.Context, limit int) ([]Estimate, error)
}

// Estimate is one served prediction as persisted.
type Estimate struct {
	ID        int64
	City      string
	Location  string
	Bedrooms  int
	Bathrooms int
	FloorArea float64
	FloorNo   int
	Price     float64
	CreatedAt time.Time
}

// PredictionResult is the pipeline's terminal success value.
type PredictionResult struct {
	Price   float64
	Display string
}
