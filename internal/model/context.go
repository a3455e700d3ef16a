package model

// Identity is the user and machine shown in the first prompt segment.
// Both fields are always non-empty; resolvers substitute placeholders.
type Identity struct {
	User string
	Host string
}

// VcsStatus is the version-control state of the working directory for
// one render cycle. It is never reused across cycles.
type VcsStatus struct {
	Branch   string // branch name, or a short revision when Detached
	Detached bool   // HEAD points at a commit, not a branch
	Upstream string // e.g. "origin/main"; empty when no upstream is configured
	Ahead    int    // commits on the branch but not on Upstream
	Behind   int    // commits on Upstream but not on the branch
	Dirty    bool   // staged, unstaged, or untracked changes exist
}

// HasUpstream reports whether a tracking branch is configured. Ahead and
// Behind are always zero when it is not.
func (v VcsStatus) HasUpstream() bool { return v.Upstream != "" }

// PromptContext is the snapshot rendered for one prompt cycle.
type PromptContext struct {
	Identity     Identity
	Session      *Session   // nil outside a multiplexer
	Timestamp    string     // wall clock, HH:MM:SS
	Directory    string     // working directory with the home prefix as "~"
	Vcs          *VcsStatus // nil outside a repository
	LastExitCode int
}
