// Package render turns a PromptContext into the two prompt lines.
//
// Render is pure: it decides which segments appear and in what order,
// tagging each with a semantic Role. Styler then maps roles to colors and
// produces terminal text. Keeping the two apart lets tests assert on
// segment sequences without parsing escape codes.
package render

import (
	"strconv"
	"strings"
	"unicode"

	"promptline/internal/config"
	"promptline/internal/model"
)

// Role is the semantic purpose of a segment; the theme colors by role.
type Role int

const (
	RoleIdentity Role = iota
	RoleSession
	RoleTime
	RolePath
	RoleBranch
	RoleDivergence
	RoleClean
	RoleDirty
	RoleSuccess
	RoleFailure
)

var roleNames = [...]string{
	RoleIdentity:   "identity",
	RoleSession:    "session",
	RoleTime:       "time",
	RolePath:       "path",
	RoleBranch:     "branch",
	RoleDivergence: "divergence",
	RoleClean:      "clean",
	RoleDirty:      "dirty",
	RoleSuccess:    "success",
	RoleFailure:    "failure",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "role(" + strconv.Itoa(int(r)) + ")"
	}
	return roleNames[r]
}

// Segment is one styled unit of prompt text.
type Segment struct {
	Role Role
	Text string
}

// Line is an ordered run of segments, drawn space-separated.
type Line []Segment

// Plain returns the line's text without styling.
func (l Line) Plain() string {
	parts := make([]string, len(l))
	for i, seg := range l {
		parts[i] = seg.Text
	}
	return strings.Join(parts, " ")
}

// Prompt is the rendered output: the status line and the input line.
type Prompt [2]Line

// Render lays out pc. It never fails: absent optional fields drop their
// segments.
func Render(pc model.PromptContext, g config.Glyphs) Prompt {
	status := Line{
		{RoleIdentity, printable(pc.Identity.User + "@" + pc.Identity.Host)},
	}
	if s := pc.Session; s != nil {
		status = append(status, Segment{RoleSession, "[" + s.Kind.String() + ":" + printable(s.Name) + "]"})
	}
	status = append(status,
		Segment{RoleTime, printable(pc.Timestamp)},
		Segment{RolePath, printable(pc.Directory)},
	)
	if v := pc.Vcs; v != nil {
		status = append(status, vcsSegments(*v, g)...)
	}

	marker := Segment{RoleSuccess, g.Marker}
	if pc.LastExitCode != 0 {
		marker.Role = RoleFailure
	}
	return Prompt{status, Line{marker}}
}

func vcsSegments(v model.VcsStatus, g config.Glyphs) []Segment {
	segs := []Segment{{RoleBranch, "git:" + printable(v.Branch)}}
	if v.Ahead > 0 {
		segs = append(segs, Segment{RoleDivergence, g.Ahead + strconv.Itoa(v.Ahead)})
	}
	if v.Behind > 0 {
		segs = append(segs, Segment{RoleDivergence, g.Behind + strconv.Itoa(v.Behind)})
	}
	if v.Dirty {
		segs = append(segs, Segment{RoleDirty, g.Dirty})
	} else {
		segs = append(segs, Segment{RoleClean, g.Clean})
	}
	return segs
}

// printable replaces control characters with "?". Paths and session names
// may legally contain newlines or ESC, which would split the status line
// or inject terminal sequences.
func printable(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, s)
}
