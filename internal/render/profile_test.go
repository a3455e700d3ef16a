package render

import (
	"io"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		in   string
		want termenv.Profile
	}{
		{"truecolor", termenv.TrueColor},
		{"24bit", termenv.TrueColor},
		{"256", termenv.ANSI256},
		{"16", termenv.ANSI},
		{"none", termenv.Ascii},
		{"OFF", termenv.Ascii},
	}
	for _, tt := range tests {
		got, err := ParseProfile(tt.in, io.Discard)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseProfile("sixel", io.Discard)
	assert.Error(t, err)
}

func TestParseProfile_AutoHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("COLORTERM", "truecolor")

	got, err := ParseProfile("auto", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, got)
}
