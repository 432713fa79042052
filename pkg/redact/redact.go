// Package redact scrubs sensitive tokens from text before compilation.
//
// The filter is a pure text→text pass applied by callers that want
// secret-scrubbing (the CLI and server enable it by default); the compiler
// itself never requires it and makes no guarantee about its completeness.
// Patterns are deliberately coarse: better to mangle an odd label than to
// embed a credential in a shareable artifact.
package redact

import "regexp"

// rule pairs a secret pattern with its replacement placeholder.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rules = []rule{
	// e-mail addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	// 16-digit card numbers, optionally grouped by spaces or dashes
	{regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`), "[CARD]"},
	// password/secret/key/token assignments
	{regexp.MustCompile(`(?i)\b(?:password|pwd|secret|key|token|api[-_]?key)\s*[:=]\s*\S+`), "password: [REDACTED]"},
	// bare API key material (sk-/pk- prefixed)
	{regexp.MustCompile(`\b(?:sk|pk)-[A-Za-z0-9]{20,}\b`), "[SECRET]"},
}

// Scrub replaces every recognized secret in text with a placeholder token.
// The input is returned unchanged when nothing matches.
func Scrub(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
