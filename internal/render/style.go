package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"promptline/internal/config"
)

// Shell selects how escape sequences are marked for the line editor.
type Shell string

const (
	ShellNone Shell = "none" // raw ANSI, e.g. for previews
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
)

// ParseShell validates a --shell value.
func ParseShell(s string) (Shell, error) {
	switch sh := Shell(strings.ToLower(s)); sh {
	case ShellNone, ShellBash, ShellZsh:
		return sh, nil
	case "":
		return ShellNone, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (want bash, zsh or none)", s)
	}
}

// Styler maps segments to terminal text using a theme.
type Styler struct {
	theme    config.Theme
	shell    Shell
	renderer *lipgloss.Renderer
}

// NewStyler returns a Styler for theme. The color profile is pinned rather
// than detected: the prompt is captured by the shell through a pipe, where
// detection would always choose no color.
func NewStyler(theme config.Theme, profile termenv.Profile, shell Shell) *Styler {
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	if shell == "" {
		shell = ShellNone
	}
	return &Styler{theme: theme, shell: shell, renderer: renderer}
}

func (s *Styler) color(r Role) lipgloss.Color {
	switch r {
	case RoleIdentity:
		return s.theme.Identity
	case RoleSession:
		return s.theme.Session
	case RoleTime:
		return s.theme.Time
	case RolePath:
		return s.theme.Path
	case RoleBranch:
		return s.theme.Branch
	case RoleDivergence:
		return s.theme.Divergence
	case RoleClean:
		return s.theme.Clean
	case RoleDirty:
		return s.theme.Dirty
	case RoleSuccess:
		return s.theme.Success
	case RoleFailure:
		return s.theme.Failure
	}
	return ""
}

func (s *Styler) style(r Role) lipgloss.Style {
	st := s.renderer.NewStyle().Foreground(s.color(r))
	switch r {
	case RoleBranch, RoleSuccess, RoleFailure:
		st = st.Bold(true)
	}
	return st
}

// Segment renders one segment.
func (s *Styler) Segment(seg Segment) string {
	styled := s.style(seg.Role).Render(seg.Text)
	if s.shell == ShellNone {
		return styled
	}
	// Split the styled text around the literal so only the escape codes
	// get wrapped and only the literal gets escaped.
	i := strings.Index(styled, seg.Text)
	if i < 0 {
		return escapeText(s.shell, ansi.Strip(styled))
	}
	prefix, suffix := styled[:i], styled[i+len(seg.Text):]
	return wrapEscape(s.shell, prefix) + escapeText(s.shell, seg.Text) + wrapEscape(s.shell, suffix)
}

// Line renders segments separated by single spaces.
func (s *Styler) Line(l Line) string {
	parts := make([]string, len(l))
	for i, seg := range l {
		parts[i] = s.Segment(seg)
	}
	return strings.Join(parts, " ")
}

// Prompt renders both lines. The input line ends with a space so typed
// text does not touch the marker.
func (s *Styler) Prompt(p Prompt) string {
	return s.Line(p[0]) + "\n" + s.Line(p[1]) + " "
}

// Width returns the number of terminal cells a rendered line occupies,
// ignoring escape codes.
func Width(rendered string) int {
	return ansi.StringWidth(rendered)
}
