package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"basha_price/internal/domain"
)

// PredictionService runs the request-to-feature pipeline: validate,
// encode, assemble, infer. Every failure leaves it as a classified
// domain.Fault; nothing propagates unclassified past Predict.
type PredictionService struct {
	model    domain.Model
	encoder  domain.Encoder
	cache    domain.Cache
	store    domain.EstimateStore
	cacheTTL time.Duration
}

func NewPredictionService(m domain.Model, e domain.Encoder, c domain.Cache, s domain.EstimateStore, ttl time.Duration) *PredictionService {
	return &PredictionService{model: m, encoder: e, cache: c, store: s, cacheTTL: ttl}
}

func (s *PredictionService) Predict(ctx context.Context, raw domain.RawRequest) (PredictionView, error) {
	in, err := domain.Validate(raw)
	if err != nil {
		return PredictionView{}, err
	}

	// Identical validated input yields identical output, so the final
	// view is cacheable as-is.
	key := estimateKey(in)
	var view PredictionView
	if s.cache != nil {
		// a hit that fails to decode is a corrupt entry, not a result
		if ok, err := s.cache.Get(ctx, key, &view); ok && err == nil {
			return view, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("estimate cache read failed")
		}
	}

	encodedLoc, err := s.encoder.Transform(ctx, in.Location)
	if err != nil {
		return PredictionView{}, domain.EncodingFault(err)
	}

	row, err := domain.Assemble(in, encodedLoc, in.City.OneHot())
	if err != nil {
		return PredictionView{}, err
	}

	price, err := s.model.Predict(ctx, row)
	if err != nil {
		return PredictionView{}, domain.InferenceFault(err)
	}
	result := domain.PredictionResult{Price: price, Display: domain.FormatPrice(price)}

	view = toView(in, result)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, view, int(s.cacheTTL.Seconds()))
	}
	if s.store != nil {
		// best-effort: a history write must never fail a served estimate
		if err := s.store.InsertEstimate(ctx, toEstimate(in, result)); err != nil {
			log.Warn().Err(err).Msg("estimate history insert failed")
		}
	}
	return view, nil
}

// RecentEstimates lists the latest served estimates, newest first.
func (s *PredictionService) RecentEstimates(ctx context.Context, limit int) ([]domain.Estimate, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListEstimates(ctx, limit)
}
