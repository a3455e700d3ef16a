package identity

import (
	"errors"
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"

	"promptline/internal/model"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestCollapseHome(t *testing.T) {
	tests := []struct {
		name string
		path string
		home string
		want string
	}{
		{name: "subdirectory", path: "/home/alice/project", home: "/home/alice", want: "~/project"},
		{name: "home itself", path: "/home/alice", home: "/home/alice", want: "~"},
		{name: "trailing slash on home", path: "/home/alice/src/x", home: "/home/alice/", want: "~/src/x"},
		{name: "sibling with shared prefix", path: "/home/alice2/project", home: "/home/alice", want: "/home/alice2/project"},
		{name: "outside home", path: "/etc/nginx", home: "/home/alice", want: "/etc/nginx"},
		{name: "root home never collapses", path: "/srv", home: "/", want: "/srv"},
		{name: "no home", path: "/tmp", home: "", want: "/tmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseHome(tt.path, tt.home))
		})
	}
}

func TestIdentity(t *testing.T) {
	r := &Resolver{
		getenv:      fakeEnv(nil),
		currentUser: func() (*user.User, error) { return &user.User{Username: "alice"}, nil },
		hostname:    func() (string, error) { return "build01.corp.example.com", nil },
	}

	assert.Equal(t, model.Identity{User: "alice", Host: "build01"}, r.Identity())
}

func TestIdentityFallbacks(t *testing.T) {
	failUser := func() (*user.User, error) { return nil, errors.New("no passwd entry") }
	failHost := func() (string, error) { return "", errors.New("uname failed") }

	t.Run("env user", func(t *testing.T) {
		r := &Resolver{
			getenv:      fakeEnv(map[string]string{"LOGNAME": "bob"}),
			currentUser: failUser,
			hostname:    failHost,
		}
		assert.Equal(t, model.Identity{User: "bob", Host: UnknownHost}, r.Identity())
	})

	t.Run("placeholders", func(t *testing.T) {
		r := &Resolver{
			getenv:      fakeEnv(nil),
			currentUser: failUser,
			hostname:    func() (string, error) { return "", nil },
		}
		assert.Equal(t, model.Identity{User: UnknownUser, Host: UnknownHost}, r.Identity())
	})
}

func TestDirectory(t *testing.T) {
	t.Run("collapses home", func(t *testing.T) {
		r := &Resolver{
			getenv: fakeEnv(map[string]string{"HOME": "/home/alice"}),
			getwd:  func() (string, error) { return "/home/alice/project", nil },
		}
		assert.Equal(t, "~/project", r.Directory())
		assert.Equal(t, "/home/alice/project", r.WorkingDir())
	})

	t.Run("falls back to PWD", func(t *testing.T) {
		r := &Resolver{
			getenv: fakeEnv(map[string]string{"HOME": "/home/alice", "PWD": "/home/alice/gone"}),
			getwd:  func() (string, error) { return "", errors.New("stale handle") },
		}
		assert.Equal(t, "~/gone", r.Directory())
	})

	t.Run("unknown", func(t *testing.T) {
		r := &Resolver{
			getenv:      fakeEnv(nil),
			currentUser: func() (*user.User, error) { return nil, errors.New("nope") },
			getwd:       func() (string, error) { return "", errors.New("stale handle") },
		}
		assert.Equal(t, UnknownDir, r.Directory())
	})
}
