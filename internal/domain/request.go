package domain

import (
	"math"
	"strconv"
	"strings"
)

// RawRequest carries the six untrusted form values exactly as submitted.
type RawRequest struct {
	City      string
	Location  string
	Bedrooms  string
	Bathrooms string
	FloorArea string
	FloorNo   string
}

// ValidatedInput only ever exists fully valid: every field present, the
// city a member of the closed set, every numeric field parsed and > 0.
type ValidatedInput struct {
	City      City
	Location  string
	Bedrooms  int
	Bathrooms int
	FloorArea float64
	FloorNo   int
}

// Validate runs the checks in a fixed order: presence, city domain,
// numeric parse, numeric range. The first failing check determines the
// reported kind. A literal "0" counts as present; it fails the range
// check, not the presence check.
func Validate(raw RawRequest) (ValidatedInput, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"city", raw.City},
		{"location", raw.Location},
		{"bedrooms", raw.Bedrooms},
		{"bathrooms", raw.Bathrooms},
		{"floor_area", raw.FloorArea},
		{"floor_no", raw.FloorNo},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return ValidatedInput{}, MissingField(f.name)
		}
	}

	city, ok := ParseCity(raw.City)
	if !ok {
		return ValidatedInput{}, InvalidCity("city")
	}

	bedrooms, err := parseInt(raw.Bedrooms)
	if err != nil {
		return ValidatedInput{}, InvalidNumber("bedrooms")
	}
	bathrooms, err := parseInt(raw.Bathrooms)
	if err != nil {
		return ValidatedInput{}, InvalidNumber("bathrooms")
	}
	floorArea, err := strconv.ParseFloat(strings.TrimSpace(raw.FloorArea), 64)
	if err != nil || math.IsNaN(floorArea) || math.IsInf(floorArea, 0) {
		// ParseFloat accepts "NaN" and "Inf"; neither is a valid area
		return ValidatedInput{}, InvalidNumber("floor_area")
	}
	floorNo, err := parseInt(raw.FloorNo)
	if err != nil {
		return ValidatedInput{}, InvalidNumber("floor_no")
	}

	switch {
	case bedrooms <= 0:
		return ValidatedInput{}, OutOfRange("bedrooms")
	case bathrooms <= 0:
		return ValidatedInput{}, OutOfRange("bathrooms")
	case floorArea <= 0:
		return ValidatedInput{}, OutOfRange("floor_area")
	case floorNo <= 0:
		return ValidatedInput{}, OutOfRange("floor_no")
	}

	return ValidatedInput{
		City:      city,
		Location:  strings.TrimSpace(raw.Location),
		Bedrooms:  bedrooms,
		Bathrooms: bathrooms,
		FloorArea: floorArea,
		FloorNo:   floorNo,
	}, nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
