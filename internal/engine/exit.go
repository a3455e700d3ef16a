package engine

import "sync"

// ExitTracker remembers the exit status of the most recent foreground
// command. It is the only state that survives between prompt cycles.
type ExitTracker struct {
	mu   sync.Mutex
	code int
}

// Record overwrites the stored status. Codes are stored as reported by
// the shell; no range check is applied.
func (t *ExitTracker) Record(code int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.code = code
}

// Last returns the most recently recorded status, 0 before any command.
func (t *ExitTracker) Last() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.code
}
