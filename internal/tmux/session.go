// Package tmux classifies the terminal multiplexer the shell runs in.
// Detect is a pure function of the environment; SessionName optionally
// asks the running tmux server for the real session name.
package tmux

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"promptline/internal/model"
)

// Detect classifies the session from environment variables. tmux exports
// TMUX=<socket>,<pid>,<index>; screen exports STY=<pid>.<name>. When both
// are present tmux is the inner multiplexer and wins. Unknown shapes yield
// nil.
func Detect(getenv func(string) string) *model.Session {
	if s := fromTmux(getenv("TMUX")); s != nil {
		return s
	}
	return fromScreen(getenv("STY"))
}

func fromTmux(v string) *model.Session {
	socket, _, ok := strings.Cut(v, ",")
	if !ok || socket == "" {
		return nil
	}
	// The socket basename is the server label: "default" unless -L was used.
	name := filepath.Base(socket)
	if name == "." || name == string(filepath.Separator) {
		return nil
	}
	return &model.Session{Kind: model.Tmux, Name: name}
}

func fromScreen(v string) *model.Session {
	pid, name, ok := strings.Cut(v, ".")
	if !ok || pid == "" || name == "" {
		return nil
	}
	return &model.Session{Kind: model.Screen, Name: name}
}

// SessionName asks the tmux server for the name of the attached session.
// The caller bounds the query with ctx.
func SessionName(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "tmux", "display-message", "-p", "#S").Output()
	if err != nil {
		return "", fmt.Errorf("tmux display-message: %w", err)
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", fmt.Errorf("tmux display-message: empty session name")
	}
	return name, nil
}
