package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "PROMPTLINE_CONFIG"

// fileConfig is the on-disk YAML shape. Unset fields keep defaults.
type fileConfig struct {
	Theme      string            `yaml:"theme,omitempty"`
	Colors     map[string]string `yaml:"colors,omitempty"`
	Glyphs     *fileGlyphs       `yaml:"glyphs,omitempty"`
	Git        *fileGit          `yaml:"git,omitempty"`
	Tmux       *fileTmux         `yaml:"tmux,omitempty"`
	TimeFormat string            `yaml:"time_format,omitempty"`
}

type fileGlyphs struct {
	Clean  string `yaml:"clean,omitempty"`
	Dirty  string `yaml:"dirty,omitempty"`
	Ahead  string `yaml:"ahead,omitempty"`
	Behind string `yaml:"behind,omitempty"`
	Marker string `yaml:"marker,omitempty"`
}

type fileGit struct {
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	Detached string        `yaml:"detached,omitempty"`
}

type fileTmux struct {
	QueryName *bool `yaml:"query_name,omitempty"`
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Path picks the config file: the --config flag, then $PROMPTLINE_CONFIG,
// then <user config dir>/promptline/config.yaml. explicit is true when the
// user named the file, in which case it must exist.
func Path(flagValue string, getenv func(string) string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if v := getenv(EnvConfig); v != "" {
		return v, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "promptline", "config.yaml"), false
}

// Load reads the config at path over the defaults. A missing file is an
// error only when explicit is set.
func Load(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := fc.apply(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Theme != "" {
		preset := ThemePreset(fc.Theme)
		if !KnownPreset(preset) {
			return fmt.Errorf("unknown theme %q", fc.Theme)
		}
		cfg.Preset = preset
		cfg.Theme = ThemeForPreset(preset)
	}

	for role, value := range fc.Colors {
		slot := cfg.Theme.slot(role)
		if slot == nil {
			return fmt.Errorf("unknown color role %q", role)
		}
		if !validColor(value) {
			return fmt.Errorf("color %s: invalid value %q (want #RGB, #RRGGBB or 0-255)", role, value)
		}
		*slot = lipgloss.Color(value)
	}

	if g := fc.Glyphs; g != nil {
		setIfNotEmpty(&cfg.Glyphs.Clean, g.Clean)
		setIfNotEmpty(&cfg.Glyphs.Dirty, g.Dirty)
		setIfNotEmpty(&cfg.Glyphs.Ahead, g.Ahead)
		setIfNotEmpty(&cfg.Glyphs.Behind, g.Behind)
		setIfNotEmpty(&cfg.Glyphs.Marker, g.Marker)
	}

	if g := fc.Git; g != nil {
		if g.Timeout < 0 {
			return fmt.Errorf("git.timeout must be positive, got %s", g.Timeout)
		}
		if g.Timeout > 0 {
			cfg.Git.Timeout = g.Timeout
		}
		switch g.Detached {
		case "":
		case "short-sha", "label":
			cfg.Git.Detached = g.Detached
		default:
			return fmt.Errorf("git.detached: want short-sha or label, got %q", g.Detached)
		}
	}

	if fc.Tmux != nil && fc.Tmux.QueryName != nil {
		cfg.Tmux.QueryName = *fc.Tmux.QueryName
	}
	setIfNotEmpty(&cfg.TimeFormat, fc.TimeFormat)
	return nil
}

// slot returns the Theme field for a YAML role key.
func (t *Theme) slot(role string) *lipgloss.Color {
	switch role {
	case "identity":
		return &t.Identity
	case "session":
		return &t.Session
	case "time":
		return &t.Time
	case "path":
		return &t.Path
	case "branch":
		return &t.Branch
	case "divergence":
		return &t.Divergence
	case "clean":
		return &t.Clean
	case "dirty":
		return &t.Dirty
	case "success":
		return &t.Success
	case "failure":
		return &t.Failure
	}
	return nil
}

func validColor(v string) bool {
	if hexColor.MatchString(v) {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 0 && n <= 255
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// SavePreset records preset as the theme in the file at path. Only the
// theme value changes; comments, key order and other settings are kept.
// The directory is created if needed.
func SavePreset(path string, preset ThemePreset) error {
	if !KnownPreset(preset) {
		return fmt.Errorf("unknown theme %q", preset)
	}

	var doc yaml.Node
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read config: %w", err)
	}
	if err := setTheme(&doc, string(preset)); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// setTheme sets the top-level theme key of doc in place, appending it when
// absent. An empty document becomes a one-key mapping.
func setTheme(doc *yaml.Node, theme string) error {
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		root.Kind, root.Tag, root.Value = yaml.MappingNode, "!!map", ""
	}
	if root.Kind != yaml.MappingNode {
		return errors.New("top level is not a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "theme" {
			continue
		}
		v := root.Content[i+1]
		v.Kind, v.Tag, v.Value, v.Style, v.Content = yaml.ScalarNode, "!!str", theme, 0, nil
		return nil
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "theme"},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: theme},
	)
	return nil
}
