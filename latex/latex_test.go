package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFix_RepairsEscapedBraces(t *testing.T) {
	in := `\documentclass{article}\begin{document}hello \{world\}\end{document}`
	out := Fix(in)
	assert.NotContains(t, out, `\{`)
	assert.NotContains(t, out, `\}`)
	assert.Contains(t, out, "{world}")
}

func TestFix_RestoresEnvironmentBackslashes(t *testing.T) {
	in := "\\documentclass{article}\nbegin{document}\ntext\nend{document}"
	out := Fix(in)
	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, `\end{document}`)
	// Already escaped environments are left alone.
	assert.Equal(t, 1, strings.Count(out, `\begin{document}`))
}

func TestFix_RepairsAdjacentEnvironments(t *testing.T) {
	// Back-to-back bare occurrences are all repaired in a single pass.
	assert.Equal(t, `\begin{\begin{`, Fix("begin{begin{"))
	assert.Equal(t, `\end{\end{\end{`, Fix("end{end{end{"))
	assert.Equal(t, `\begin{itemize}\begin{itemize}`, Fix("begin{itemize}begin{itemize}"))
}

func TestFix_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		`plain text`,
		`\{escaped\}`,
		"begin{itemize}end{itemize}",
		"begin{begin{",
		"end{end{end{",
		`\begin{itemize}begin{itemize}`,
		FallbackTemplate(),
		`\documentclass{article}begin{document}\{x\}end{document}`,
	}
	for _, in := range inputs {
		once := Fix(in)
		assert.Equal(t, once, Fix(once), "Fix must be idempotent for %q", in)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"empty", "", false},
		{"plain text", "hello world", false},
		{"missing end", `\documentclass{article}\begin{document}`, false},
		{"complete", `\documentclass{article}\begin{document}x\end{document}`, true},
		{"case insensitive", `\DOCUMENTCLASS{article}\BEGIN{DOCUMENT}x\END{DOCUMENT}`, true},
		{"double escaped braces", `\documentclass{article}\begin{document}\\{x\\}\end{document}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValid(tt.code))
		})
	}
}

func TestFallbackTemplate_IsValidAfterFix(t *testing.T) {
	assert.True(t, IsValid(Fix(FallbackTemplate())))
}
