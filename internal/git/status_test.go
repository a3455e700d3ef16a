package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"promptline/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRunner struct {
	out   string
	err   error
	calls int
	block bool
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

func TestCollect_SingleQuery(t *testing.T) {
	runner := &fakeRunner{out: "# branch.oid " + oid + "\n# branch.head main\n"}
	c := NewCollector(runner, Options{})

	got := c.Collect(context.Background(), "/repo")

	require.NotNil(t, got)
	assert.Equal(t, "main", got.Branch)
	assert.Equal(t, 1, runner.calls)
}

func TestCollect_FailuresAreAbsent(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
	}{
		{name: "not a repository", runner: &fakeRunner{err: ErrNotRepository}},
		{name: "git missing", runner: &fakeRunner{err: exec.ErrNotFound}},
		{name: "corrupt repository", runner: &fakeRunner{err: errors.New("fatal: bad object HEAD")}},
		{name: "garbage output", runner: &fakeRunner{out: "not porcelain at all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(tt.runner, Options{})
			assert.Nil(t, c.Collect(context.Background(), "/repo"))
			assert.Equal(t, 1, tt.runner.calls, "must not retry")
		})
	}
}

func TestCollect_EmptyDir(t *testing.T) {
	runner := &fakeRunner{}
	c := NewCollector(runner, Options{})

	assert.Nil(t, c.Collect(context.Background(), ""))
	assert.Zero(t, runner.calls)
}

func TestCollect_TimeoutIsAbsent(t *testing.T) {
	runner := &fakeRunner{block: true}
	c := NewCollector(runner, Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	got := c.Collect(context.Background(), "/repo")

	assert.Nil(t, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

// The tests below drive the real git binary against throwaway
// repositories.

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available: %v", err)
	}
}

// gitEnv isolates test repositories from the user's git configuration.
func gitEnv() []string {
	return append(os.Environ(),
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_CONFIG_GLOBAL="+os.DevNull,
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@test.local",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@test.local",
	)
}

func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	command := exec.Command("git", append([]string{"-C", dir}, args...)...)
	command.Env = gitEnv()
	output, err := command.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func commit(t *testing.T, dir, file, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, file), content)
	gitIn(t, dir, "add", file)
	gitIn(t, dir, "commit", "-q", "-m", "update "+file)
}

// initRepo creates a repository on branch main with one commit.
func initRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	gitIn(t, dir, "init", "-q", "-b", "main")
	commit(t, dir, "README", "hello\n")
	return dir
}

// cloneRepo clones origin into a new directory; main tracks origin/main.
func cloneRepo(t *testing.T, origin string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "clone")
	gitIn(t, origin, "clone", "-q", origin, dir)
	return dir
}

func collect(t *testing.T, dir string) *model.VcsStatus {
	t.Helper()
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	c := NewCollector(nil, Options{Timeout: 10 * time.Second})
	return c.Collect(context.Background(), dir)
}

func TestCollect_OutsideRepository(t *testing.T) {
	requireGit(t)
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())

	assert.Nil(t, collect(t, t.TempDir()))
}

func TestCollect_FreshCloneIsClean(t *testing.T) {
	origin := initRepo(t)
	clone := cloneRepo(t, origin)

	got := collect(t, clone)

	require.NotNil(t, got)
	assert.Equal(t, model.VcsStatus{Branch: "main", Upstream: "origin/main"}, *got)
}

func TestCollect_ModifiedTrackedFileIsDirty(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, filepath.Join(dir, "README"), "changed\n")

	got := collect(t, dir)

	require.NotNil(t, got)
	assert.True(t, got.Dirty)
}

func TestCollect_StagedChangeIsDirty(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, filepath.Join(dir, "README"), "staged\n")
	gitIn(t, dir, "add", "README")

	got := collect(t, dir)

	require.NotNil(t, got)
	assert.True(t, got.Dirty)
}

func TestCollect_UntrackedOnlyIsDirty(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, filepath.Join(dir, "scratch.txt"), "notes\n")

	got := collect(t, dir)

	require.NotNil(t, got)
	assert.True(t, got.Dirty)
}

func TestCollect_IgnoredFileIsClean(t *testing.T) {
	dir := initRepo(t)
	commit(t, dir, ".gitignore", "*.log\n")
	writeFile(t, filepath.Join(dir, "debug.log"), "noise\n")

	got := collect(t, dir)

	require.NotNil(t, got)
	assert.False(t, got.Dirty)
}

func TestCollect_PermissionChangeIsClean(t *testing.T) {
	dir := initRepo(t)
	if err := os.Chmod(filepath.Join(dir, "README"), 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	got := collect(t, dir)

	require.NotNil(t, got)
	assert.False(t, got.Dirty)
}

func TestCollect_NoUpstreamHasNoDivergence(t *testing.T) {
	dir := initRepo(t)
	commit(t, dir, "a.txt", "a\n")
	commit(t, dir, "b.txt", "b\n")

	got := collect(t, dir)

	require.NotNil(t, got)
	assert.Equal(t, model.VcsStatus{Branch: "main"}, *got)
	assert.False(t, got.HasUpstream())
}

func TestCollect_AheadOfUpstream(t *testing.T) {
	origin := initRepo(t)
	clone := cloneRepo(t, origin)
	commit(t, clone, "a.txt", "a\n")
	commit(t, clone, "b.txt", "b\n")

	got := collect(t, clone)

	require.NotNil(t, got)
	assert.Equal(t, model.VcsStatus{Branch: "main", Upstream: "origin/main", Ahead: 2}, *got)
}

func TestCollect_BehindUpstream(t *testing.T) {
	origin := initRepo(t)
	clone := cloneRepo(t, origin)
	commit(t, origin, "upstream.txt", "new\n")
	gitIn(t, clone, "fetch", "-q")

	got := collect(t, clone)

	require.NotNil(t, got)
	assert.Equal(t, 0, got.Ahead)
	assert.Equal(t, 1, got.Behind)
}

func TestCollect_Subdirectory(t *testing.T) {
	dir := initRepo(t)
	commit(t, dir, "pkg/deep/file.go", "package deep\n")

	got := collect(t, filepath.Join(dir, "pkg", "deep"))

	require.NotNil(t, got)
	assert.Equal(t, "main", got.Branch)
}

func TestCollect_DetachedHead(t *testing.T) {
	dir := initRepo(t)
	commit(t, dir, "a.txt", "a\n")
	sha := gitIn(t, dir, "rev-parse", "HEAD~1")
	gitIn(t, dir, "checkout", "-q", "--detach", sha)

	got := collect(t, dir)

	require.NotNil(t, got)
	assert.True(t, got.Detached)
	assert.Equal(t, sha[:7], got.Branch)
}
