// Package engine drives one prompt cycle: it records the finished
// command's exit status, gathers every PromptContext field in a fixed
// order, and hands the snapshot to the renderer.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"promptline/internal/clock"
	"promptline/internal/config"
	"promptline/internal/git"
	"promptline/internal/identity"
	"promptline/internal/model"
	"promptline/internal/render"
	"promptline/internal/tmux"
)

// IdentityResolver reports who is logged in and on which host.
type IdentityResolver interface {
	Identity() model.Identity
}

// DirectoryResolver reports the working directory, both for display and
// as the raw path handed to the version-control collector.
type DirectoryResolver interface {
	Directory() string
	WorkingDir() string
}

// SessionDetector classifies the enclosing multiplexer, nil when none.
type SessionDetector interface {
	Detect(ctx context.Context) *model.Session
}

// VcsCollector reports repository status for dir, nil outside a repo.
type VcsCollector interface {
	Collect(ctx context.Context, dir string) *model.VcsStatus
}

// Collectors are the data sources for one cycle. Nil members are filled
// with the real implementations by New.
type Collectors struct {
	Identity  IdentityResolver
	Session   SessionDetector
	Clock     clock.Clock
	Directory DirectoryResolver
	Vcs       VcsCollector
}

// Engine runs the two-phase prompt protocol. Callers must not overlap
// OnPromptRender calls; the shell never does.
type Engine struct {
	cfg    *config.Config
	c      Collectors
	styler *render.Styler
	exit   ExitTracker
	logger *zap.Logger

	lastCycle time.Duration
}

// New builds an Engine. styler may be nil when only Collect and Prompt are
// used.
func New(cfg *config.Config, c Collectors, styler *render.Styler, logger *zap.Logger) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var resolver *identity.Resolver
	if c.Identity == nil || c.Directory == nil {
		resolver = identity.New()
	}
	if c.Identity == nil {
		c.Identity = resolver
	}
	if c.Directory == nil {
		c.Directory = resolver
	}
	if c.Session == nil {
		c.Session = &tmux.Detector{
			Getenv:    os.Getenv,
			QueryName: cfg.Tmux.QueryName,
			Timeout:   cfg.Git.Timeout,
			Logger:    logger,
		}
	}
	if c.Clock == nil {
		c.Clock = clock.Real()
	}
	if c.Vcs == nil {
		c.Vcs = git.NewCollector(nil, git.Options{
			Timeout:  cfg.Git.Timeout,
			Detached: git.DetachedStyle(cfg.Git.Detached),
			Logger:   logger,
		})
	}

	return &Engine{cfg: cfg, c: c, styler: styler, logger: logger}
}

// OnCommandComplete records the exit status of the command that just
// finished. It runs before the next OnPromptRender.
func (e *Engine) OnCommandComplete(code int) {
	e.exit.Record(code)
}

// OnPromptRender collects a fresh context and returns the styled prompt
// text. It never fails; unavailable fields degrade to placeholders.
func (e *Engine) OnPromptRender(ctx context.Context) string {
	p := e.Prompt(ctx)
	if e.styler == nil {
		return p[0].Plain() + "\n" + p[1].Plain() + " "
	}
	return e.styler.Prompt(p)
}

// Prompt collects a fresh context and lays it out without styling.
func (e *Engine) Prompt(ctx context.Context) render.Prompt {
	return render.Render(e.Collect(ctx), e.cfg.Glyphs)
}

// Collect gathers one PromptContext. Identity, session, clock, directory,
// vcs, then exit status, always in that order.
func (e *Engine) Collect(ctx context.Context) model.PromptContext {
	start := time.Now()
	var pc model.PromptContext

	pc.Identity = collect(e, "identity", model.Identity{}, e.c.Identity.Identity)
	if pc.Identity.User == "" {
		pc.Identity.User = identity.UnknownUser
	}
	if pc.Identity.Host == "" {
		pc.Identity.Host = identity.UnknownHost
	}

	pc.Session = collect(e, "session", nil, func() *model.Session {
		return e.c.Session.Detect(ctx)
	})

	pc.Timestamp = collect(e, "clock", "--:--:--", func() string {
		return clock.Timestamp(e.c.Clock, e.cfg.TimeFormat)
	})

	pc.Directory = collect(e, "directory", identity.UnknownDir, e.c.Directory.Directory)
	if pc.Directory == "" {
		pc.Directory = identity.UnknownDir
	}

	pc.Vcs = collect(e, "vcs", nil, func() *model.VcsStatus {
		return e.c.Vcs.Collect(ctx, e.c.Directory.WorkingDir())
	})

	pc.LastExitCode = e.exit.Last()

	e.lastCycle = time.Since(start)
	e.logger.Debug("prompt context collected", zap.Duration("elapsed", e.lastCycle))
	return pc
}

// LastCycle is the wall time spent in the most recent Collect.
func (e *Engine) LastCycle() time.Duration { return e.lastCycle }

// collect runs one collector, substituting fallback if it panics.
func collect[T any](e *Engine, name string, fallback T, fn func() T) (v T) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("collector panicked",
				zap.String("collector", name),
				zap.String("panic", fmt.Sprint(r)))
			v = fallback
		}
		e.logger.Debug("collector finished",
			zap.String("collector", name),
			zap.Duration("elapsed", time.Since(start)))
	}()
	return fn()
}
