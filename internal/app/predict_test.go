package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"basha_price/internal/app"
	"basha_price/internal/domain"
)

// ---- fakes ----

type fakeModel struct {
	out   float64
	err   error
	calls int32
	row   []float64
}

func (m *fakeModel) Predict(ctx context.Context, row []float64) (float64, error) {
	atomic.AddInt32(&m.calls, 1)
	m.row = append([]float64(nil), row...)
	return m.out, m.err
}

type fakeEncoder struct {
	out   float64
	err   error
	calls int32
}

func (e *fakeEncoder) Transform(ctx context.Context, category string) (float64, error) {
	atomic.AddInt32(&e.calls, 1)
	return e.out, e.err
}

type fakeCache struct {
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, _ := json.Marshal(v)
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

type fakeStore struct {
	inserted []domain.Estimate
	insErr   error
}

func (s *fakeStore) InsertEstimate(ctx context.Context, e domain.Estimate) error {
	s.inserted = append(s.inserted, e)
	return s.insErr
}

func (s *fakeStore) ListEstimates(ctx context.Context, limit int) ([]domain.Estimate, error) {
	return s.inserted, nil
}

func validRaw() domain.RawRequest {
	return domain.RawRequest{
		City:      "City_dhaka",
		Location:  "Mirpur",
		Bedrooms:  "3",
		Bathrooms: "2",
		FloorArea: "1200.5",
		FloorNo:   "4",
	}
}

// ---- tests ----

func TestPredict_Scenario(t *testing.T) {
	model := &fakeModel{out: 4500000.0}
	enc := &fakeEncoder{out: 7.0}
	store := &fakeStore{}
	svc := app.NewPredictionService(model, enc, nil, store, time.Minute)

	view, err := svc.Predict(context.Background(), validRaw())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if view.PredictedPrice != "4,500,000.00" {
		t.Fatalf("predicted_price=%q", view.PredictedPrice)
	}
	if view.City != "Dhaka" || view.Location != "Mirpur" {
		t.Fatalf("unexpected view: %+v", view)
	}
	wantRow := []float64{3, 2, 4, 1200.5, 7.0, 0, 0, 1, 0, 0}
	if len(model.row) != len(wantRow) {
		t.Fatalf("row len=%d, want %d", len(model.row), len(wantRow))
	}
	for i := range wantRow {
		if model.row[i] != wantRow[i] {
			t.Fatalf("row[%d]=%v, want %v", i, model.row[i], wantRow[i])
		}
	}
	if len(store.inserted) != 1 || store.inserted[0].Price != 4500000.0 || store.inserted[0].City != "dhaka" {
		t.Fatalf("unexpected history: %+v", store.inserted)
	}
}

func TestPredict_MissingFieldSkipsModel(t *testing.T) {
	model := &fakeModel{out: 1}
	enc := &fakeEncoder{out: 1}
	svc := app.NewPredictionService(model, enc, nil, nil, time.Minute)

	raw := validRaw()
	raw.Location = ""
	_, err := svc.Predict(context.Background(), raw)
	if got := domain.KindOf(err); got != domain.FaultMissingField {
		t.Fatalf("kind=%v, want missing_field", got)
	}
	if n := atomic.LoadInt32(&model.calls); n != 0 {
		t.Fatalf("model invoked %d times, want 0", n)
	}
	if n := atomic.LoadInt32(&enc.calls); n != 0 {
		t.Fatalf("encoder invoked %d times, want 0", n)
	}
}

func TestPredict_Idempotent(t *testing.T) {
	svc := app.NewPredictionService(&fakeModel{out: 980123.456}, &fakeEncoder{out: 3.25}, nil, nil, time.Minute)

	v1, err := svc.Predict(context.Background(), validRaw())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	v2, err := svc.Predict(context.Background(), validRaw())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b1, _ := json.Marshal(v1)
	b2, _ := json.Marshal(v2)
	if string(b1) != string(b2) {
		t.Fatalf("outputs differ:\n%s\n%s", b1, b2)
	}
}

func TestPredict_CacheHitSkipsPipeline(t *testing.T) {
	model := &fakeModel{out: 4500000.0}
	enc := &fakeEncoder{out: 7.0}
	svc := app.NewPredictionService(model, enc, &fakeCache{}, nil, time.Minute)

	if _, err := svc.Predict(context.Background(), validRaw()); err != nil {
		t.Fatalf("err: %v", err)
	}
	view, err := svc.Predict(context.Background(), validRaw())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if view.PredictedPrice != "4,500,000.00" {
		t.Fatalf("predicted_price=%q", view.PredictedPrice)
	}
	if n := atomic.LoadInt32(&model.calls); n != 1 {
		t.Fatalf("model invoked %d times, want 1", n)
	}
}

type corruptCache struct{}

func (corruptCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	return true, errors.New("unmarshal failed")
}
func (corruptCache) Set(ctx context.Context, key string, v any, ttlSec int) error { return nil }
func (corruptCache) Del(ctx context.Context, key string) error                    { return nil }

func TestPredict_CorruptCacheEntryFallsThrough(t *testing.T) {
	model := &fakeModel{out: 4500000.0}
	svc := app.NewPredictionService(model, &fakeEncoder{out: 7.0}, corruptCache{}, nil, time.Minute)

	view, err := svc.Predict(context.Background(), validRaw())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if view.PredictedPrice != "4,500,000.00" || view.City != "Dhaka" {
		t.Fatalf("expected freshly computed view, got %+v", view)
	}
	if n := atomic.LoadInt32(&model.calls); n != 1 {
		t.Fatalf("model invoked %d times, want 1", n)
	}
}

func TestPredict_EncoderFailureClassified(t *testing.T) {
	model := &fakeModel{out: 1}
	enc := &fakeEncoder{err: errors.New("unseen category")}
	svc := app.NewPredictionService(model, enc, nil, nil, time.Minute)

	_, err := svc.Predict(context.Background(), validRaw())
	if got := domain.KindOf(err); got != domain.FaultEncoding {
		t.Fatalf("kind=%v, want encoding", got)
	}
	if n := atomic.LoadInt32(&model.calls); n != 0 {
		t.Fatalf("model invoked %d times, want 0", n)
	}
}

func TestPredict_ModelFailureClassified(t *testing.T) {
	model := &fakeModel{err: errors.New("boom")}
	svc := app.NewPredictionService(model, &fakeEncoder{out: 1}, nil, nil, time.Minute)

	_, err := svc.Predict(context.Background(), validRaw())
	if got := domain.KindOf(err); got != domain.FaultInference {
		t.Fatalf("kind=%v, want inference", got)
	}
}

func TestPredict_StoreFailureDoesNotFailRequest(t *testing.T) {
	store := &fakeStore{insErr: errors.New("db down")}
	svc := app.NewPredictionService(&fakeModel{out: 42}, &fakeEncoder{out: 1}, nil, store, time.Minute)

	view, err := svc.Predict(context.Background(), validRaw())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if view.PredictedPrice != "42.00" {
		t.Fatalf("predicted_price=%q", view.PredictedPrice)
	}
}

func TestUserMessage_PerKind(t *testing.T) {
	svc := app.NewPredictionService(&fakeModel{out: 1}, &fakeEncoder{out: 1}, nil, nil, time.Minute)
	raw := validRaw()
	raw.Bedrooms = "-1"
	_, err := svc.Predict(context.Background(), raw)
	if app.UserMessage(err) != "All numeric values must be greater than 0." {
		t.Fatalf("unexpected message: %q", app.UserMessage(err))
	}
}
