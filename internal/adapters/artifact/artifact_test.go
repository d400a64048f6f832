package artifact_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"basha_price/internal/adapters/artifact"
	"basha_price/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const modelJSON = `{
  "intercept": 100.0,
  "coefficients": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10],
  "feature_names": ["Bedrooms","Bathrooms","Floor_no","Floor_area","Location",
    "City_chattogram","City_cumilla","City_dhaka","City_gazipur","City_narayanganj-city"]
}`

func TestLoadModel_PredictDotProduct(t *testing.T) {
	m, err := artifact.LoadModel(writeFile(t, "model.json", modelJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := m.VerifySchema(domain.Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	row := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	got, err := m.Predict(context.Background(), row)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if want := 100.0 + 55.0; got != want {
		t.Fatalf("predict=%v, want %v", got, want)
	}
}

func TestLoadModel_SchemaMismatch(t *testing.T) {
	m, err := artifact.LoadModel(writeFile(t, "model.json", `{
	  "intercept": 0,
	  "coefficients": [1, 2],
	  "feature_names": ["Bedrooms", "Bathrooms"]
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := m.VerifySchema(domain.Schema); err == nil {
		t.Fatal("expected schema mismatch")
	}
}

func TestLoadModel_NameCoefficientDrift(t *testing.T) {
	_, err := artifact.LoadModel(writeFile(t, "model.json", `{
	  "intercept": 0,
	  "coefficients": [1, 2, 3],
	  "feature_names": ["a", "b"]
	}`))
	if err == nil {
		t.Fatal("expected error for mismatched names/coefficients")
	}
}

func TestModel_RejectsWrongWidth(t *testing.T) {
	m, err := artifact.LoadModel(writeFile(t, "model.json", modelJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := m.Predict(context.Background(), []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestEncoder_Transform(t *testing.T) {
	e, err := artifact.LoadEncoder(writeFile(t, "encoder.json", `{
	  "mapping": {"Mirpur": 7.0, "Uttara": 9.5}
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := e.Transform(context.Background(), "Mirpur")
	if err != nil || got != 7.0 {
		t.Fatalf("Transform(Mirpur)=%v, %v", got, err)
	}
	// lookup is case-insensitive on the normalized key
	got, err = e.Transform(context.Background(), "  mirpur ")
	if err != nil || got != 7.0 {
		t.Fatalf("Transform(mirpur)=%v, %v", got, err)
	}
	if _, err := e.Transform(context.Background(), "Atlantis"); err == nil {
		t.Fatal("expected error for unseen location without default")
	}
}

func TestEncoder_DefaultFallback(t *testing.T) {
	e, err := artifact.LoadEncoder(writeFile(t, "encoder.json", `{
	  "mapping": {"Mirpur": 7.0},
	  "default": 5.25
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := e.Transform(context.Background(), "Atlantis")
	if err != nil || got != 5.25 {
		t.Fatalf("Transform(Atlantis)=%v, %v", got, err)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	if _, err := artifact.LoadModel(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing model file")
	}
	if _, err := artifact.LoadEncoder(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing encoder file")
	}
}
