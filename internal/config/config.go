// Package config holds the prompt's static configuration: the color for
// each semantic role, the glyphs, and collector limits. A Config is built
// once at process start and never mutated afterwards.
package config

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Config holds the application configuration
type Config struct {
	Preset     ThemePreset
	Theme      Theme
	Glyphs     Glyphs
	Git        GitConfig
	Tmux       TmuxConfig
	TimeFormat string // Go time layout for the time segment
}

// ThemePreset names a built-in palette.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Presets lists the built-in palettes in display order.
func Presets() []ThemePreset {
	return []ThemePreset{PresetDefault, PresetSolarize, PresetDracula}
}

// Theme maps each semantic prompt role to a color.
type Theme struct {
	Identity   lipgloss.Color
	Session    lipgloss.Color
	Time       lipgloss.Color
	Path       lipgloss.Color
	Branch     lipgloss.Color
	Divergence lipgloss.Color
	Clean      lipgloss.Color
	Dirty      lipgloss.Color
	Success    lipgloss.Color // input marker after exit status 0
	Failure    lipgloss.Color // input marker after any other exit status
}

// Glyphs are the literal symbols drawn in the prompt.
type Glyphs struct {
	Clean  string
	Dirty  string
	Ahead  string
	Behind string
	Marker string
}

// GitConfig bounds the version-control query.
type GitConfig struct {
	Timeout  time.Duration
	Detached string // "short-sha" or "label"
}

// TmuxConfig controls tmux session name lookup.
type TmuxConfig struct {
	QueryName bool // ask the tmux server for the session name
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Preset:     PresetDefault,
		Theme:      ThemeForPreset(PresetDefault),
		Glyphs:     DefaultGlyphs(),
		Git:        GitConfig{Timeout: 500 * time.Millisecond, Detached: "short-sha"},
		Tmux:       TmuxConfig{QueryName: false},
		TimeFormat: "15:04:05",
	}
}

// DefaultGlyphs returns the built-in symbols.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Clean:  "✓",
		Dirty:  "✗",
		Ahead:  "↑",
		Behind: "↓",
		Marker: "❯",
	}
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		Identity:   lipgloss.Color("#87AFFF"),
		Session:    lipgloss.Color("#AF87FF"),
		Time:       lipgloss.Color("#808080"),
		Path:       lipgloss.Color("#5FD7FF"),
		Branch:     lipgloss.Color("#FFAF00"),
		Divergence: lipgloss.Color("#D7D787"),
		Clean:      lipgloss.Color("#5FD75F"),
		Dirty:      lipgloss.Color("#FF5F5F"),
		Success:    lipgloss.Color("#5FD75F"),
		Failure:    lipgloss.Color("#FF5F5F"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme. Unknown
// names get the default palette.
func ThemeForPreset(preset ThemePreset) Theme {
	switch preset {
	case PresetSolarize:
		return Theme{
			Identity:   lipgloss.Color("#268BD2"),
			Session:    lipgloss.Color("#6C71C4"),
			Time:       lipgloss.Color("#586E75"),
			Path:       lipgloss.Color("#2AA198"),
			Branch:     lipgloss.Color("#B58900"),
			Divergence: lipgloss.Color("#CB4B16"),
			Clean:      lipgloss.Color("#859900"),
			Dirty:      lipgloss.Color("#DC322F"),
			Success:    lipgloss.Color("#859900"),
			Failure:    lipgloss.Color("#DC322F"),
		}
	case PresetDracula:
		return Theme{
			Identity:   lipgloss.Color("#BD93F9"),
			Session:    lipgloss.Color("#FF79C6"),
			Time:       lipgloss.Color("#6272A4"),
			Path:       lipgloss.Color("#8BE9FD"),
			Branch:     lipgloss.Color("#FFB86C"),
			Divergence: lipgloss.Color("#F1FA8C"),
			Clean:      lipgloss.Color("#50FA7B"),
			Dirty:      lipgloss.Color("#FF5555"),
			Success:    lipgloss.Color("#50FA7B"),
			Failure:    lipgloss.Color("#FF5555"),
		}
	default:
		return DefaultTheme()
	}
}

// KnownPreset reports whether name is a built-in preset.
func KnownPreset(name ThemePreset) bool {
	for _, p := range Presets() {
		if p == name {
			return true
		}
	}
	return false
}
