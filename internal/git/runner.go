package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrNotRepository is returned when the directory is outside any work tree.
var ErrNotRepository = errors.New("not a git repository")

// Runner executes git with the working directory set to dir and returns
// stdout. Tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct{}

// Run executes "git -C dir args...". Stderr is captured and folded into
// the error. GIT_OPTIONAL_LOCKS=0 keeps status from taking index.lock,
// which would otherwise race with git commands the user is running.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Hooks or credential helpers can inherit the pipes; don't wait on them.
	cmd.WaitDelay = 100 * time.Millisecond

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("git %s in %s: %w", strings.Join(args, " "), dir, ctxErr)
		}
		if strings.Contains(msg, "not a git repository") {
			return "", fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), dir, err, msg)
	}
	return stdout.String(), nil
}
