package models

import "strings"

// MaxCountries caps how many ranked countries a lookup returns.
const MaxCountries = 5

// MaxNameLength bounds accepted names.
const MaxNameLength = 100

// NameQuery is the assembled result of a name lookup. It is cached whole
// under the name's key and never persisted otherwise.
type NameQuery struct {
	Name      string         `json:"name"`
	Countries []CountryScore `json:"countries"`
}

// TopCountry returns the highest ranked country code, or "" when there is none.
func (q *NameQuery) TopCountry() string {
	if q == nil || len(q.Countries) == 0 {
		return ""
	}
	return q.Countries[0].Code
}

// CountryScore is one ranked prediction. Metadata is nil when enrichment failed.
type CountryScore struct {
	Code        string           `json:"code"`
	Probability float64          `json:"probability"`
	Metadata    *CountryMetadata `json:"metadata,omitempty"`
}

// CountryMetadata describes a country, keyed by its ISO alpha-2 code.
// Borders holds ISO alpha-3 codes.
type CountryMetadata struct {
	Code             string   `json:"code"`
	Alpha3           string   `json:"alpha3,omitempty"`
	DisplayName      string   `json:"display_name"`
	OfficialName     string   `json:"official_name,omitempty"`
	Region           string   `json:"region,omitempty"`
	Independent      *bool    `json:"independent,omitempty"`
	Capital          string   `json:"capital,omitempty"`
	CapitalLat       *float64 `json:"capital_lat,omitempty"`
	CapitalLng       *float64 `json:"capital_lng,omitempty"`
	GoogleMapsURL    string   `json:"google_maps_url,omitempty"`
	OpenStreetMapURL string   `json:"openstreetmap_url,omitempty"`
	FlagURL          string   `json:"flag_url,omitempty"`
	FlagSVG          string   `json:"flag_svg,omitempty"`
	FlagAlt          string   `json:"flag_alt,omitempty"`
	CoatOfArmsPNG    string   `json:"coat_of_arms_png,omitempty"`
	CoatOfArmsSVG    string   `json:"coat_of_arms_svg,omitempty"`
	Borders          []string `json:"borders"`
}

// NormalizeCountryCode upper-cases code and reports whether it is two ASCII letters.
func NormalizeCountryCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return code, false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return code, false
		}
	}
	return code, true
}
