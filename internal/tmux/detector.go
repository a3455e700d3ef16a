package tmux

import (
	"context"
	"time"

	"go.uber.org/zap"

	"promptline/internal/model"
)

// Detector classifies the session and, for tmux, optionally replaces the
// socket label with the attached session's real name.
type Detector struct {
	Getenv    func(string) string
	QueryName bool
	Timeout   time.Duration
	Logger    *zap.Logger

	// lookup defaults to SessionName; tests replace it.
	lookup func(context.Context) (string, error)
}

// Detect never fails. A failed or slow name query keeps the label from
// the environment.
func (d *Detector) Detect(ctx context.Context) *model.Session {
	s := Detect(d.Getenv)
	if s == nil || s.Kind != model.Tmux || !d.QueryName {
		return s
	}

	lookup := d.lookup
	if lookup == nil {
		lookup = SessionName
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 200 * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, err := lookup(ctx)
	if err != nil {
		if d.Logger != nil {
			d.Logger.Debug("tmux session name unavailable", zap.Error(err))
		}
		return s
	}
	return &model.Session{Kind: model.Tmux, Name: name}
}
