// Package identity resolves the process-level facts shown on the first
// prompt line: who is logged in, on which machine, and where.
package identity

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"promptline/internal/model"
)

// Placeholders used when the OS cannot answer.
const (
	UnknownUser = "user"
	UnknownHost = "localhost"
	UnknownDir  = "?"
)

// Resolver reads user, host and directory state. The zero value is not
// usable; call New.
type Resolver struct {
	getenv      func(string) string
	currentUser func() (*user.User, error)
	hostname    func() (string, error)
	getwd       func() (string, error)
}

// New returns a Resolver backed by the real process environment.
func New() *Resolver {
	return &Resolver{
		getenv:      os.Getenv,
		currentUser: user.Current,
		hostname:    os.Hostname,
		getwd:       os.Getwd,
	}
}

// Identity returns the current user and the host's short name. Each half
// falls back to a placeholder independently.
func (r *Resolver) Identity() model.Identity {
	return model.Identity{User: r.user(), Host: r.host()}
}

func (r *Resolver) user() string {
	if u, err := r.currentUser(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, key := range []string{"USER", "LOGNAME"} {
		if v := strings.TrimSpace(r.getenv(key)); v != "" {
			return v
		}
	}
	return UnknownUser
}

func (r *Resolver) host() string {
	name, err := r.hostname()
	if err != nil {
		return UnknownHost
	}
	// "build01.corp.example.com" → "build01"
	if before, _, ok := strings.Cut(name, "."); ok && before != "" {
		name = before
	}
	if name == "" {
		return UnknownHost
	}
	return name
}

// Directory returns the working directory with the home prefix collapsed
// to "~". When the working directory cannot be read, $PWD is used, then
// UnknownDir.
func (r *Resolver) Directory() string {
	cwd, err := r.getwd()
	if err != nil || cwd == "" {
		cwd = r.getenv("PWD")
	}
	if cwd == "" {
		return UnknownDir
	}
	return CollapseHome(cwd, r.home())
}

// WorkingDir returns the raw working directory, or "" if unknown. The VCS
// collector needs the uncollapsed path.
func (r *Resolver) WorkingDir() string {
	if cwd, err := r.getwd(); err == nil && cwd != "" {
		return cwd
	}
	return r.getenv("PWD")
}

func (r *Resolver) home() string {
	if h := r.getenv("HOME"); h != "" {
		return h
	}
	if u, err := r.currentUser(); err == nil {
		return u.HomeDir
	}
	return ""
}

// CollapseHome replaces a leading home directory in path with "~". The
// match must end on a path separator, so "/home/al" does not collapse
// "/home/alice". A home of "/" never collapses.
func CollapseHome(path, home string) string {
	if home == "" {
		return path
	}
	home = filepath.Clean(home)
	if home == string(filepath.Separator) {
		return path
	}
	path = filepath.Clean(path)
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}
