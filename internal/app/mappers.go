package app

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"basha_price/internal/domain"
)

// PredictionView is the success payload returned to callers.
type PredictionView struct {
	City           string  `json:"city"`
	Location       string  `json:"location"`
	Bedrooms       int     `json:"bedrooms"`
	Bathrooms      int     `json:"bathrooms"`
	FloorArea      float64 `json:"floor_area"`
	FloorNo        int     `json:"floor_no"`
	PredictedPrice string  `json:"predicted_price"`
}

func toView(in domain.ValidatedInput, r domain.PredictionResult) PredictionView {
	return PredictionView{
		City:           in.City.Display(),
		Location:       in.Location,
		Bedrooms:       in.Bedrooms,
		Bathrooms:      in.Bathrooms,
		FloorArea:      in.FloorArea,
		FloorNo:        in.FloorNo,
		PredictedPrice: r.Display,
	}
}

func toEstimate(in domain.ValidatedInput, r domain.PredictionResult) domain.Estimate {
	return domain.Estimate{
		City:      in.City.Slug(),
		Location:  in.Location,
		Bedrooms:  in.Bedrooms,
		Bathrooms: in.Bathrooms,
		FloorArea: in.FloorArea,
		FloorNo:   in.FloorNo,
		Price:     r.Price,
	}
}

// estimateKey hashes the canonical validated input; two requests that
// canonicalize identically share one cache entry.
func estimateKey(in domain.ValidatedInput) string {
	sig := fmt.Sprintf("%s|%s|%d|%d|%g|%d",
		in.City.Slug(), in.Location, in.Bedrooms, in.Bathrooms, in.FloorArea, in.FloorNo)
	sum := sha1.Sum([]byte(sig))
	return "estimate:" + hex.EncodeToString(sum[:])
}

// UserMessage maps a pipeline fault to the single user-facing message for
// its kind. Unclassified errors get the generic inference message.
func UserMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.FaultMissingField:
		return "Please fill out all fields."
	case domain.FaultInvalidCity:
		return "Invalid city selected."
	case domain.FaultInvalidNumber:
		return "Invalid numeric input. Please check your numbers."
	case domain.FaultOutOfRange:
		return "All numeric values must be greater than 0."
	case domain.FaultEncoding:
		return "Unrecognized location. Please check the location name."
	case domain.FaultSchema:
		return "Internal error during prediction. Please try again later."
	}
	return "An error occurred during prediction. Please try again."
}
