package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"promptline/internal/config"
	"promptline/internal/model"
	"promptline/internal/render"
)

// — state ———————————————————————————————————————————————————————————————————

type appState int

const (
	stateNormal appState = iota
	stateSave
)

// — styles ——————————————————————————————————————————————————————————————————

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	dimStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			PaddingLeft(2)

	detailHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().Faint(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3).
			Width(58)
)

// — spinner —————————————————————————————————————————————————————————————————

var spinnerFrames = []string{"|", "/", "-", "\\"}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// — messages ————————————————————————————————————————————————————————————————

type contextCollectedMsg struct {
	pc      model.PromptContext
	elapsed time.Duration
}

type presetSavedMsg struct {
	preset config.ThemePreset
	path   string
	err    error
}

// — list item ———————————————————————————————————————————————————————————————

type presetItem struct {
	preset  config.ThemePreset
	theme   config.Theme
	current bool
}

func (i presetItem) Title() string {
	if i.current {
		return "* " + string(i.preset)
	}
	return "  " + string(i.preset)
}

func (i presetItem) Description() string {
	return fmt.Sprintf("branch %s · path %s", i.theme.Branch, i.theme.Path)
}

func (i presetItem) FilterValue() string { return string(i.preset) }

// — model ———————————————————————————————————————————————————————————————————

// Engine is the part of the prompt engine the preview drives.
type Engine interface {
	OnCommandComplete(code int)
	Collect(ctx context.Context) model.PromptContext
	LastCycle() time.Duration
}

// Options configure the preview.
type Options struct {
	Engine     Engine
	Config     *config.Config
	ConfigPath string          // where w writes the chosen preset
	Profile    termenv.Profile // color profile of the preview terminal
}

type Model struct {
	list    list.Model
	presets []config.ThemePreset
	engine  Engine
	cfg     *config.Config
	profile termenv.Profile
	width   int
	height  int
	initial int // preset selected once the list has a size

	loading   bool
	collected bool
	pc        model.PromptContext
	elapsed   time.Duration
	exitCode  int

	state        appState
	pathInput    textinput.Model
	configPath   string
	inputErr     string
	notice       string
	spinnerFrame int
}

func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	presets := config.Presets()
	items := make([]list.Item, len(presets))
	selected := 0
	for i, p := range presets {
		items[i] = presetItem{preset: p, theme: themeFor(cfg, p), current: p == cfg.Preset}
		if p == cfg.Preset {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()

	l := list.New(items, delegate, 0, 0)
	l.Title = "Themes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	ti := textinput.New()
	ti.Placeholder = "~/.config/promptline/config.yaml"
	ti.CharLimit = 4096

	return Model{
		list:       l,
		presets:    presets,
		initial:    selected,
		engine:     opts.Engine,
		cfg:        cfg,
		profile:    opts.Profile,
		loading:    true,
		pathInput:  ti,
		configPath: opts.ConfigPath,
	}
}

// themeFor applies the user's color overrides only to the preset they
// configured.
func themeFor(cfg *config.Config, p config.ThemePreset) config.Theme {
	if p == cfg.Preset {
		return cfg.Theme
	}
	return config.ThemeForPreset(p)
}

// — commands ————————————————————————————————————————————————————————————————

func collectCmd(e Engine) tea.Cmd {
	return func() tea.Msg {
		pc := e.Collect(context.Background())
		return contextCollectedMsg{pc: pc, elapsed: e.LastCycle()}
	}
}

func savePresetCmd(path string, preset config.ThemePreset) tea.Cmd {
	return func() tea.Msg {
		err := config.SavePreset(path, preset)
		return presetSavedMsg{preset: preset, path: path, err: err}
	}
}

// — tea.Model ———————————————————————————————————————————————————————————————

func (m Model) Init() tea.Cmd {
	return tea.Batch(collectCmd(m.engine), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lw, lh := m.listDimensions()
		m.list.SetSize(lw, lh)
		if m.initial >= 0 {
			m.list.Select(m.initial)
			m.initial = -1
		}
		return m, nil

	case tickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		return m, tickCmd()

	case contextCollectedMsg:
		m.loading = false
		m.collected = true
		m.pc = msg.pc
		m.elapsed = msg.elapsed
		return m, nil

	case presetSavedMsg:
		if msg.err != nil {
			m.inputErr = msg.err.Error()
			return m, nil
		}
		m.state = stateNormal
		m.inputErr = ""
		m.pathInput.Blur()
		m.configPath = msg.path
		m.notice = fmt.Sprintf("saved %s to %s", msg.preset, msg.path)
		m.markCurrent(msg.preset)
		return m, nil
	}

	switch m.state {
	case stateSave:
		return m.updateSave(msg)
	default:
		return m.updateNormal(msg)
	}
}

func (m Model) updateNormal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m.recollect()
		case "s":
			if m.exitCode == 0 {
				m.exitCode = 1
			} else {
				m.exitCode = 0
			}
			m.engine.OnCommandComplete(m.exitCode)
			return m.recollect()
		case "w":
			if m.selectedPreset() == "" {
				return m, nil
			}
			m.state = stateSave
			m.inputErr = ""
			m.notice = ""
			m.pathInput.SetValue(m.configPath)
			m.pathInput.Focus()
			return m, textinput.Blink
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSave(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.state = stateNormal
			m.inputErr = ""
			m.pathInput.Blur()
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				m.inputErr = "config path cannot be empty"
				return m, nil
			}
			m.inputErr = ""
			return m, savePresetCmd(path, m.selectedPreset())
		}
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) recollect() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(collectCmd(m.engine), tickCmd())
}

// markCurrent moves the "*" marker to preset after it is written.
func (m *Model) markCurrent(preset config.ThemePreset) {
	items := make([]list.Item, len(m.presets))
	for i, p := range m.presets {
		items[i] = presetItem{preset: p, theme: themeFor(m.cfg, p), current: p == preset}
	}
	m.list.SetItems(items)
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	if !m.collected {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			spinnerFrames[m.spinnerFrame] + " Collecting prompt context…")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.renderDetail())
	base := lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelp())

	if m.state == stateSave {
		return m.renderSaveModalOver(base)
	}
	return base
}

// — layout helpers ——————————————————————————————————————————————————————————

func (m Model) listDimensions() (width, height int) {
	return m.width / 3, m.height - 2
}

func (m Model) renderDetail() string {
	lw, _ := m.listDimensions()
	dw := m.width - lw
	dh := m.height - 2

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		PaddingLeft(3).
		PaddingRight(2).
		Width(dw - 1).
		Height(dh)

	// Width of inner text area: box width minus padding
	contentWidth := (dw - 1) - 3 - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	preset := m.selectedPreset()
	if preset == "" {
		return style.Render(dimStyle.Render("No themes"))
	}

	styler := render.NewStyler(themeFor(m.cfg, preset), m.profile, render.ShellNone)
	prompt := render.Render(m.pc, m.cfg.Glyphs)
	line1 := styler.Line(prompt[0])

	row := func(lbl, val string) string {
		return labelStyle.Render(lbl) + val + "\n"
	}

	exitVal := okStyle.Render("0 success")
	if m.pc.LastExitCode != 0 {
		exitVal = errStyle.Render(fmt.Sprintf("%d failure", m.pc.LastExitCode))
	}

	collected := m.elapsed.Round(time.Microsecond).String()
	if m.loading {
		collected = spinnerFrames[m.spinnerFrame] + " collecting"
	}

	sep := dimStyle.Render(strings.Repeat("─", contentWidth))

	var b strings.Builder
	b.WriteString(detailHeadStyle.Render(string(preset)) + "\n\n")
	b.WriteString(line1 + "\n")
	b.WriteString(styler.Line(prompt[1]) + " \n\n")
	b.WriteString(sep + "\n\n")
	b.WriteString(row("Width     ", fmt.Sprintf("%d cells", render.Width(line1))))
	b.WriteString(row("Collected ", collected))
	b.WriteString(row("Exit      ", exitVal))
	b.WriteString(row("Directory ", m.pc.Directory))
	if m.pc.Vcs == nil {
		b.WriteString(row("Repo      ", dimStyle.Render("none")))
	}

	if m.notice != "" {
		b.WriteString("\n" + okStyle.Render(m.notice) + "\n")
	}

	return style.Render(b.String())
}

func (m Model) renderHelp() string {
	var text string
	switch m.state {
	case stateSave:
		text = "Enter save   Esc cancel"
	default:
		text = "↑/↓ select   s toggle exit status   r refresh   w write to config   q quit"
	}
	sep := dimStyle.Render(strings.Repeat("─", m.width))
	return sep + "\n" + helpStyle.Render(text)
}

func (m Model) renderSaveModalOver(base string) string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("Save Theme") + "\n\n")
	b.WriteString(dimStyle.Render(string(m.selectedPreset())) + "\n\n")
	b.WriteString("Config file\n")
	b.WriteString(m.pathInput.View() + "\n")
	if m.inputErr != "" {
		b.WriteString("\n" + errStyle.Render(m.inputErr) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("Only the theme changes; comments and other settings stay"))

	modal := modalStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("0")),
	)
}

func (m Model) selectedPreset() config.ThemePreset {
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.presets) {
		return ""
	}
	return m.presets[idx]
}
