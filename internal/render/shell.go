package render

import "strings"

// Variables defined by the bash hook. Backslash, dollar and backtick in
// text are emitted as references to them; "\$" would decode to "#" for
// root.
const (
	BashDollar    = "_promptline_dollar"
	BashBacktick  = "_promptline_backtick"
	BashBackslash = "_promptline_backslash"
)

var (
	bashEscaper = strings.NewReplacer(
		`\`, "${"+BashBackslash+"}",
		"$", "${"+BashDollar+"}",
		"`", "${"+BashBacktick+"}",
	)
	zshEscaper = strings.NewReplacer("%", "%%")
)

// wrapEscape marks a run of escape codes as zero-width so the line editor
// computes the prompt width correctly.
func wrapEscape(shell Shell, seq string) string {
	if seq == "" {
		return ""
	}
	switch shell {
	case ShellBash:
		return `\[` + seq + `\]`
	case ShellZsh:
		return "%{" + seq + "%}"
	}
	return seq
}

// escapeText quotes characters the shell would otherwise expand when it
// decodes the prompt string, e.g. a directory named "$(rm -rf ~)". zsh
// only needs "%" escaped: its hook installs the text through a parameter,
// and prompt_subst does not expand a parameter's value a second time.
func escapeText(shell Shell, text string) string {
	switch shell {
	case ShellBash:
		return bashEscaper.Replace(text)
	case ShellZsh:
		return zshEscaper.Replace(text)
	}
	return text
}
