package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// ParseProfile resolves a --color value. "auto" inspects TERM, COLORTERM
// and NO_COLOR; w is not required to be a terminal since prompts are
// captured through a pipe.
func ParseProfile(s string, w io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		out := termenv.NewOutput(w, termenv.WithUnsafe())
		return out.EnvColorProfile(), nil
	case "truecolor", "24bit":
		return termenv.TrueColor, nil
	case "256":
		return termenv.ANSI256, nil
	case "16":
		return termenv.ANSI, nil
	case "none", "off":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("unsupported color mode %q (want auto, truecolor, 256, 16 or none)", s)
	}
}
