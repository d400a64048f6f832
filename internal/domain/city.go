package domain

import "strings"

// City is one of the five markets the model was trained on. The order of
// the members is the order of the one-hot block in the feature schema and
// must only ever change together with the model artifact.
type City int

const (
	CityChattogram City = iota
	CityCumilla
	CityDhaka
	CityGazipur
	CityNarayanganj
)

// CityCount is the width of the one-hot block.
const CityCount = 5

var citySlugs = [CityCount]string{
	"chattogram",
	"cumilla",
	"dhaka",
	"gazipur",
	"narayanganj-city",
}

// Cities returns all members in schema order.
func Cities() []City {
	out := make([]City, CityCount)
	for i := range out {
		out[i] = City(i)
	}
	return out
}

// ParseCity canonicalizes a raw form value. Both the legacy form value
// ("City_dhaka") and the bare slug ("dhaka") are accepted.
func ParseCity(s string) (City, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "city_")
	for i, slug := range citySlugs {
		if v == slug {
			return City(i), true
		}
	}
	return 0, false
}

// Slug returns the canonical lowercase identifier, e.g. "narayanganj-city".
func (c City) Slug() string { return citySlugs[c] }

// Display returns the user-facing name, e.g. "Narayanganj-City".
func (c City) Display() string {
	parts := strings.Split(citySlugs[c], "-")
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}

// OneHot projects the city onto the fixed-order one-hot block: exactly one
// position is 1, all others 0.
func (c City) OneHot() [CityCount]int {
	var v [CityCount]int
	v[c] = 1
	return v
}
