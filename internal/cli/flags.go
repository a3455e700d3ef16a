package cli

import (
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"promptline/internal/render"
)

var (
	_ pflag.Value = (*shellValue)(nil)
	_ pflag.Value = (*colorValue)(nil)
)

// shellValue is a --shell flag validated at parse time.
type shellValue struct{ shell render.Shell }

func (v *shellValue) String() string { return string(v.shell) }
func (v *shellValue) Type() string   { return "shell" }

func (v *shellValue) Set(s string) error {
	sh, err := render.ParseShell(s)
	if err != nil {
		return err
	}
	v.shell = sh
	return nil
}

// colorValue is a --color flag; "auto" is resolved against the output
// writer when the command runs.
type colorValue struct{ mode string }

func (v *colorValue) String() string { return v.mode }
func (v *colorValue) Type() string   { return "mode" }

func (v *colorValue) Set(s string) error {
	if _, err := render.ParseProfile(s, io.Discard); err != nil {
		return err
	}
	v.mode = s
	return nil
}

func (v *colorValue) profile(w io.Writer) termenv.Profile {
	p, _ := render.ParseProfile(v.mode, w)
	return p
}
