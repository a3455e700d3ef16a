package git

import (
	"fmt"
	"strconv"
	"strings"

	"promptline/internal/model"
)

// DetachedStyle selects how a detached HEAD is labelled.
type DetachedStyle string

const (
	// DetachedShortSHA shows the abbreviated commit, e.g. "3f2a9c1".
	DetachedShortSHA DetachedStyle = "short-sha"
	// DetachedLabel shows the literal word "detached".
	DetachedLabel DetachedStyle = "label"
)

const shortSHALen = 7

// parseStatus builds a VcsStatus from `git status --porcelain=v2 --branch`
// output. Header lines always precede entries, so scanning stops at the
// first entry that proves the tree dirty.
func parseStatus(out string, style DetachedStyle) (*model.VcsStatus, error) {
	var (
		st      model.VcsStatus
		oid     string
		sawHead bool
	)

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if header, ok := strings.CutPrefix(line, "# "); ok {
			key, value, _ := strings.Cut(header, " ")
			switch key {
			case "branch.oid":
				oid = value
			case "branch.head":
				sawHead = true
				if value == "(detached)" {
					st.Detached = true
				} else {
					st.Branch = value
				}
			case "branch.upstream":
				st.Upstream = value
			case "branch.ab":
				ahead, behind, err := parseAheadBehind(value)
				if err != nil {
					return nil, err
				}
				st.Ahead, st.Behind = ahead, behind
			}
			continue
		}
		if entryDirty(line) {
			st.Dirty = true
			break
		}
	}

	if !sawHead {
		return nil, fmt.Errorf("porcelain output has no branch.head header")
	}
	if st.Detached {
		st.Branch = detachedLabel(oid, style)
	}
	if st.Upstream == "" {
		st.Ahead, st.Behind = 0, 0
	}
	return &st, nil
}

// parseAheadBehind parses "+2 -1".
func parseAheadBehind(v string) (ahead, behind int, err error) {
	a, b, ok := strings.Cut(v, " ")
	if !ok {
		return 0, 0, fmt.Errorf("malformed branch.ab %q", v)
	}
	ahead, err = strconv.Atoi(strings.TrimPrefix(a, "+"))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed branch.ab %q: %w", v, err)
	}
	behind, err = strconv.Atoi(strings.TrimPrefix(b, "-"))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed branch.ab %q: %w", v, err)
	}
	return max(ahead, 0), max(behind, 0), nil
}

// entryDirty reports whether one porcelain v2 entry counts towards a
// dirty tree: staged or unstaged modifications, conflicts, or untracked
// files. Ignored entries are never requested. A rename or copy with a
// 100% similarity score and no worktree change is not a modification.
func entryDirty(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "?", "u":
		return true
	case "1":
		return len(fields) > 1 && fields[1] != ".."
	case "2":
		if len(fields) < 9 {
			return true
		}
		xy, score := fields[1], fields[8]
		if len(xy) < 2 || len(score) < 2 || xy[1] != '.' {
			return true
		}
		return score[1:] != "100"
	}
	return false
}

func detachedLabel(oid string, style DetachedStyle) string {
	if style == DetachedLabel || len(oid) < shortSHALen || oid == "(initial)" {
		return "detached"
	}
	return oid[:shortSHALen]
}
