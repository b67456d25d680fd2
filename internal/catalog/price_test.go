package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dollar prefix", "$45", "45"},
		{"decimal amount", "$45.50", "45.5"},
		{"thousands separator", "$1,299.99", "1299.99"},
		{"bare number", "120", "120"},
		{"currency code prefix", "MAD 120", "120"},
		{"empty string", "", "0"},
		{"no digits at all", "free", "0"},
		{"multiple dots fail closed", "1.2.3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
