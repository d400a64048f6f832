package domain

import (
	"errors"
	"fmt"
)

// FaultKind classifies every way the prediction pipeline can fail. Each
// kind maps to exactly one user-facing message; tests assert on kinds.
type FaultKind int

const (
	FaultUnknown FaultKind = iota
	FaultMissingField
	FaultInvalidCity
	FaultInvalidNumber
	FaultOutOfRange
	FaultEncoding
	FaultSchema
	FaultInference
)

func (k FaultKind) String() string {
	switch k {
	case FaultMissingField:
		return "missing_field"
	case FaultInvalidCity:
		return "invalid_city"
	case FaultInvalidNumber:
		return "invalid_number"
	case FaultOutOfRange:
		return "out_of_range"
	case FaultEncoding:
		return "encoding"
	case FaultSchema:
		return "schema"
	case FaultInference:
		return "inference"
	}
	return "unknown"
}

// Fault is the single error type crossing the pipeline boundary.
// Collaborator errors are wrapped, never leaked raw.
type Fault struct {
	Kind  FaultKind
	Field string // offending input field, when one exists
	cause error
}

func (f *Fault) Error() string {
	switch {
	case f.Field != "" && f.cause != nil:
		return fmt.Sprintf("%s: field %q: %v", f.Kind, f.Field, f.cause)
	case f.Field != "":
		return fmt.Sprintf("%s: field %q", f.Kind, f.Field)
	case f.cause != nil:
		return fmt.Sprintf("%s: %v", f.Kind, f.cause)
	}
	return f.Kind.String()
}

func (f *Fault) Unwrap() error { return f.cause }

// KindOf returns the classification of err, or FaultUnknown if err is not
// a pipeline fault.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultUnknown
}

func MissingField(field string) error { return &Fault{Kind: FaultMissingField, Field: field} }
func InvalidCity(field string) error  { return &Fault{Kind: FaultInvalidCity, Field: field} }
func InvalidNumber(field string) error {
	return &Fault{Kind: FaultInvalidNumber, Field: field}
}
func OutOfRange(field string) error { return &Fault{Kind: FaultOutOfRange, Field: field} }

func EncodingFault(cause error) error  { return &Fault{Kind: FaultEncoding, cause: cause} }
func SchemaFault(cause error) error    { return &Fault{Kind: FaultSchema, cause: cause} }
func InferenceFault(cause error) error { return &Fault{Kind: FaultInference, cause: cause} }
