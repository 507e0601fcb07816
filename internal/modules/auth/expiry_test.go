package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"2 days", 48 * time.Hour},
		{"12h", 12 * time.Hour},
		{"1.5h", 90 * time.Minute},
		{"90m", 90 * time.Minute},
		{"30 mins", 30 * time.Minute},
		{"45s", 45 * time.Second},
		{"3600", 3600 * time.Millisecond},
		{"86400000", 24 * time.Hour},
		{"500ms", 500 * time.Millisecond},
		{"1w", 7 * 24 * time.Hour},
		{"1y", time.Duration(365.25 * 24 * float64(time.Hour))},
		{"1D", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExpiry(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpiry_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1 fortnight", "-1d", "0", "d"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseExpiry(in)
			assert.Error(t, err)
		})
	}
}
