// Package latex repairs and validates LLM-generated LaTeX before it is
// handed to the document compiler. Both helpers are pure functions.
package latex

import (
	"strings"
)

// Fix reverses the over-escaping some models apply to brace characters and
// restores the control character in front of bare begin{/end{ keywords.
// Fix is idempotent: applying it twice yields the same output as once.
func Fix(code string) string {
	code = strings.ReplaceAll(code, `\{`, "{")
	code = strings.ReplaceAll(code, `\}`, "}")
	code = restoreCommand(code, "begin")
	code = restoreCommand(code, "end")
	return code
}

// restoreCommand inserts a backslash before every bare occurrence of
// word+"{" that is not already escaped. A manual scan rather than a
// regexp: a capture-group emulation of a lookbehind consumes the
// preceding character and misses the second of two adjacent occurrences.
func restoreCommand(code, word string) string {
	marker := word + "{"
	var b strings.Builder
	b.Grow(len(code))
	for i := 0; i < len(code); {
		if strings.HasPrefix(code[i:], marker) && (i == 0 || code[i-1] != '\\') {
			b.WriteByte('\\')
			b.WriteString(word)
			i += len(word)
			continue
		}
		b.WriteByte(code[i])
		i++
	}
	return b.String()
}

// IsValid reports whether code contains the three structural markers of a
// minimal compilable document (case-insensitive) and no remaining
// doubly-escaped brace sequences. Empty input is invalid.
func IsValid(code string) bool {
	if code == "" {
		return false
	}
	if strings.Contains(code, `\\{`) || strings.Contains(code, `\\}`) {
		return false
	}
	lower := strings.ToLower(code)
	required := []string{`\documentclass`, `\begin{document}`, `\end{document}`}
	for _, marker := range required {
		if !strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// FallbackTemplate returns a built-in compilable resume document used when
// generated markup fails validation, guaranteeing the restructure path
// always has something the compiler accepts.
func FallbackTemplate() string {
	return `\documentclass[11pt,a4paper]{article}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage{geometry}
\usepackage{enumitem}
\usepackage{hyperref}
\geometry{a4paper, margin=1in}
\setlist[itemize]{leftmargin=*}
\begin{document}
\begin{center}
{\LARGE \textbf{Professional Resume}}\\
\vspace{0.5cm}
{\large Software Engineer}
\end{center}
\section*{Skills}
\begin{itemize}
\item Python, JavaScript, Java, C++
\item React, Node.js, Express
\item Git, Docker, AWS
\end{itemize}
\end{document}`
}
