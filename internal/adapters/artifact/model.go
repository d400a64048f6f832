// internal/adapters/artifact/model.go
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"basha_price/internal/adapters/observability"
)

// modelFile is the JSON layout exported by the training pipeline.
type modelFile struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	FeatureNames []string  `json:"feature_names"`
}

// LinearModel is the trained regression collaborator. Immutable after
// load, safe for concurrent Predict calls.
type LinearModel struct {
	intercept float64
	coef      []float64
	features  []string
}

func LoadModel(path string) (*LinearModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var f modelFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if len(f.Coefficients) == 0 {
		return nil, fmt.Errorf("model artifact %s has no coefficients", path)
	}
	if len(f.FeatureNames) != len(f.Coefficients) {
		return nil, fmt.Errorf("model artifact %s: %d feature names for %d coefficients",
			path, len(f.FeatureNames), len(f.Coefficients))
	}
	return &LinearModel{intercept: f.Intercept, coef: f.Coefficients, features: f.FeatureNames}, nil
}

// VerifySchema asserts that the artifact was trained on exactly the given
// column order. Called once at startup; a mismatch is fatal.
func (m *LinearModel) VerifySchema(schema []string) error {
	if len(schema) != len(m.features) {
		return fmt.Errorf("schema has %d columns, model expects %d", len(schema), len(m.features))
	}
	for i, name := range schema {
		if m.features[i] != name {
			return fmt.Errorf("schema column %d is %q, model expects %q", i, name, m.features[i])
		}
	}
	return nil
}

func (m *LinearModel) Predict(ctx context.Context, row []float64) (float64, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(row) != len(m.coef) {
		observability.ObserveInference("model", "error", time.Since(start))
		return 0, fmt.Errorf("row has %d columns, model expects %d", len(row), len(m.coef))
	}
	out := m.intercept
	for i, v := range row {
		out += m.coef[i] * v
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		observability.ObserveInference("model", "error", time.Since(start))
		return 0, fmt.Errorf("model produced non-finite value %v", out)
	}
	observability.ObserveInference("model", "ok", time.Since(start))
	return out, nil
}
