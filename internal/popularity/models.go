package popularity

import (
	"strings"
	"time"
)

// DefaultLimit is how many names Top returns when no limit is given.
const DefaultLimit = 5

// Record is one successful name lookup attributed to its top country.
type Record struct {
	Name        string    `json:"name"`
	CountryCode string    `json:"country_code"`
	Timestamp   time.Time `json:"timestamp"`
}

// PopularName is an aggregated count for a name within a country.
type PopularName struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NameKey is the grouping key for a name; spelling variants that differ
// only in case are counted together.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
