package model

// SessionKind identifies the terminal multiplexer hosting the shell.
type SessionKind int

const (
	Screen SessionKind = iota + 1
	Tmux
)

// String returns the lowercase label used in the prompt, e.g. "tmux".
func (k SessionKind) String() string {
	switch k {
	case Screen:
		return "screen"
	case Tmux:
		return "tmux"
	default:
		return "unknown"
	}
}

// Session describes the multiplexer session the shell runs inside.
type Session struct {
	Kind SessionKind
	Name string // human-readable session name, e.g. "work"
}
