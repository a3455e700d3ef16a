// Package hook generates the shell snippets that wire promptline into an
// interactive shell. Each snippet captures $? before anything else runs,
// records it through "render --exit-code", and installs the result as the
// prompt.
package hook

import (
	"fmt"
	"strings"
	"text/template"

	"promptline/internal/render"
)

var bashHook = template.Must(template.New("bash").Parse(`# promptline: add to ~/.bashrc
#   eval "$({{.Exe}} init bash)"
{{.Dollar}}='$'
{{.Backtick}}=$'\x60'
{{.Backslash}}='\'
_promptline_prompt() {
	local exit_code=$?
	PS1="$({{.Exe}} render --shell bash --exit-code "$exit_code"{{.Args}})"
	return $exit_code
}
if [[ ";${PROMPT_COMMAND:-};" != *";_promptline_prompt;"* ]]; then
	PROMPT_COMMAND="_promptline_prompt${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
fi
`))

// The rendered text lives in _promptline_ps1 and PROMPT only references
// it, so prompt_subst expands the reference once and never the text.
var zshHook = template.Must(template.New("zsh").Parse(`# promptline: add to ~/.zshrc
#   eval "$({{.Exe}} init zsh)"
typeset -g _promptline_ps1=''
_promptline_precmd() {
	local exit_code=$?
	_promptline_ps1="$({{.Exe}} render --shell zsh --exit-code "$exit_code"{{.Args}})"
}
setopt prompt_subst prompt_percent
PROMPT='${_promptline_ps1}'
autoload -Uz add-zsh-hook
add-zsh-hook precmd _promptline_precmd
`))

// Script returns the hook for shell. exe is the promptline binary path and
// configPath, when set, is passed through to every render.
func Script(shell render.Shell, exe, configPath string) (string, error) {
	var t *template.Template
	switch shell {
	case render.ShellBash:
		t = bashHook
	case render.ShellZsh:
		t = zshHook
	default:
		return "", fmt.Errorf("no hook for shell %q (want bash or zsh)", shell)
	}

	data := struct {
		Exe, Args                   string
		Dollar, Backtick, Backslash string
	}{
		Exe:       Quote(exe),
		Dollar:    render.BashDollar,
		Backtick:  render.BashBacktick,
		Backslash: render.BashBackslash,
	}
	if configPath != "" {
		data.Args = " --config " + Quote(configPath)
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s hook: %w", shell, err)
	}
	return b.String(), nil
}

// Quote single-quotes s for POSIX-style shells.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
