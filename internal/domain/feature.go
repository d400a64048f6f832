package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Schema is the column contract shared with the trained model. Any change
// here without retraining yields silently wrong predictions, so the order
// is asserted both at artifact load and before every inference call.
var Schema = []string{
	"Bedrooms",
	"Bathrooms",
	"Floor_no",
	"Floor_area",
	"Location",
	"City_chattogram",
	"City_cumilla",
	"City_dhaka",
	"City_gazipur",
	"City_narayanganj-city",
}

// SchemaLen is the expected feature vector width.
const SchemaLen = 10

// FeatureVector is a single model input row in Schema order.
type FeatureVector []float64

// Assemble places the validated fields, the encoded location and the
// one-hot city block into Schema order and asserts the resulting width.
func Assemble(in ValidatedInput, encodedLocation float64, oneHot [CityCount]int) (FeatureVector, error) {
	row := make(FeatureVector, 0, SchemaLen)
	row = append(row,
		float64(in.Bedrooms),
		float64(in.Bathrooms),
		float64(in.FloorNo),
		in.FloorArea,
		encodedLocation,
	)
	for _, bit := range oneHot {
		row = append(row, float64(bit))
	}
	if len(row) != SchemaLen {
		return nil, SchemaFault(fmt.Errorf("assembled %d columns, schema has %d", len(row), SchemaLen))
	}
	return row, nil
}

// FormatPrice renders a scalar with two decimals and comma thousands
// grouping, e.g. 4500000.0 -> "4,500,000.00". Pure and reproducible.
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteString(frac)
	return b.String()
}
