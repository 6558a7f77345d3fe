package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "only separators", raw: " , ,", expected: nil},
		{name: "single", raw: "localhost:9092", expected: []string{"localhost:9092"}},
		{name: "trims", raw: " k1:9092 , k2:9092 ", expected: []string{"k1:9092", "k2:9092"}},
		{name: "drops repeats keeping first", raw: "b,a,b,a", expected: []string{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.raw, ","))
		})
	}
}

func TestDedupeAndTrim_IsCaseSensitive(t *testing.T) {
	assert.Equal(t, []string{"RO", "ro"}, DedupeAndTrim([]string{"RO", " ro", "RO "}))
}
