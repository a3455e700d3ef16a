// Package git collects the version-control segment of the prompt. It
// shells out to the git CLI once per render cycle and treats every
// failure, including timeouts, as "no repository".
package git

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"promptline/internal/model"
)

// DefaultTimeout bounds the status query. Large repositories on slow
// filesystems can take longer; they lose the git segment rather than
// stalling the prompt.
const DefaultTimeout = 500 * time.Millisecond

// statusArgs answers both "which branch and how far from upstream" and
// "is the tree clean" in a single invocation. core.fileMode=false hides
// permission-only changes.
var statusArgs = []string{
	"-c", "core.fileMode=false",
	"status", "--porcelain=v2", "--branch", "--untracked-files=normal",
}

// Options configure a Collector. Zero values select defaults.
type Options struct {
	Timeout  time.Duration
	Detached DetachedStyle
	Logger   *zap.Logger
}

// Collector produces the VcsStatus for a directory.
type Collector struct {
	runner   Runner
	timeout  time.Duration
	detached DetachedStyle
	logger   *zap.Logger
}

// NewCollector returns a Collector that queries git through runner. A nil
// runner means ExecRunner.
func NewCollector(runner Runner, opts Options) *Collector {
	if runner == nil {
		runner = ExecRunner{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Detached == "" {
		opts.Detached = DetachedShortSHA
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Collector{
		runner:   runner,
		timeout:  opts.Timeout,
		detached: opts.Detached,
		logger:   opts.Logger,
	}
}

// Collect returns the status of the work tree containing dir, or nil when
// dir is not inside a repository or git cannot answer in time. It never
// returns an error; failures are logged at debug level.
func (c *Collector) Collect(ctx context.Context, dir string) *model.VcsStatus {
	if dir == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := c.runner.Run(ctx, dir, statusArgs...)
	if err != nil {
		if errors.Is(err, ErrNotRepository) {
			c.logger.Debug("not a repository", zap.String("dir", dir))
		} else {
			c.logger.Debug("git status failed",
				zap.String("dir", dir),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
		}
		return nil
	}

	st, err := parseStatus(out, c.detached)
	if err != nil {
		c.logger.Debug("unparseable git status", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	c.logger.Debug("git status",
		zap.String("branch", st.Branch),
		zap.Int("ahead", st.Ahead),
		zap.Int("behind", st.Behind),
		zap.Bool("dirty", st.Dirty),
		zap.Duration("elapsed", time.Since(start)))
	return st
}
