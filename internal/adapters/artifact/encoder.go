// internal/adapters/artifact/encoder.go
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"basha_price/internal/adapters/observability"
)

// encoderFile is the JSON layout of the fitted target encoder: one learned
// value per location seen in training, plus an optional global fallback
// (the training-set mean) for unseen locations.
type encoderFile struct {
	Mapping map[string]float64 `json:"mapping"`
	Default *float64           `json:"default,omitempty"`
}

// TargetEncoder maps a location name to its learned numeric statistic.
// Immutable after load, safe for concurrent Transform calls.
type TargetEncoder struct {
	mapping  map[string]float64
	fallback *float64
}

func LoadEncoder(path string) (*TargetEncoder, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encoder artifact: %w", err)
	}
	var f encoderFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode encoder artifact %s: %w", path, err)
	}
	if len(f.Mapping) == 0 {
		return nil, fmt.Errorf("encoder artifact %s has an empty mapping", path)
	}
	m := make(map[string]float64, len(f.Mapping))
	for k, v := range f.Mapping {
		m[normalize(k)] = v
	}
	return &TargetEncoder{mapping: m, fallback: f.Default}, nil
}

func (e *TargetEncoder) Transform(ctx context.Context, category string) (float64, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if v, ok := e.mapping[normalize(category)]; ok {
		observability.ObserveInference("encoder", "ok", time.Since(start))
		return v, nil
	}
	if e.fallback != nil {
		observability.ObserveInference("encoder", "fallback", time.Since(start))
		return *e.fallback, nil
	}
	observability.ObserveInference("encoder", "error", time.Since(start))
	return 0, fmt.Errorf("location %q not in encoder vocabulary", category)
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
