package parse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/vizforge/vizforge/pkg/model"
)

// relationPatterns is the fixed verb-phrase table for relation extraction.
// Patterns are tried in order against each phrase; the first match wins and
// its two captures become a directed edge. Order matters: "sends data to"
// is already covered by the optional-object "sends ... to" form above it,
// but is kept to mirror the published table.
var relationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s+connects\s+to\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+sends(?:\s+request)?\s+to\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+routes\s+to\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+links\s+to\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+queries\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+returns(?:\s+(?:data|response))?\s+to\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+sends\s+data\s+to\s+(.+)$`),
}

// Diagram parses free text into a relation diagram: an unlabeled directed
// graph of entities.
//
// Two independent passes feed the same graph. The arrow pass splits every
// line containing "->" or "→" into sequentially connected entities. The
// verb-phrase pass splits the text into sentence-ish phrases and matches each
// against the fixed relation table. Entities are deduplicated by normalized
// label (articles stripped, case-folded), so a name seen in both passes maps
// to one node; duplicate edges are suppressed.
func Diagram(text string) *model.Graph {
	g := model.NewEntityGraph()

	for _, line := range splitLines(text) {
		if !arrowSplit.MatchString(line) {
			continue
		}
		parts := arrowSplit.Split(line, -1)
		for i := 0; i+1 < len(parts); i++ {
			g.AddEdge(g.AddNode(parts[i], model.RoleProcess), g.AddNode(parts[i+1], model.RoleProcess), "")
		}
	}

	for _, phrase := range splitPhrases(text) {
		for _, pat := range relationPatterns {
			m := pat.FindStringSubmatch(phrase)
			if m == nil {
				continue
			}
			g.AddEdge(g.AddNode(m[1], model.RoleProcess), g.AddNode(m[2], model.RoleProcess), "")
			break
		}
	}

	return g
}

// splitPhrases cuts text into phrases at sentence-ish boundaries: newlines,
// periods, semicolons, or a comma followed by a capital letter or digit
// (which usually starts a new clause rather than a list item).
func splitPhrases(text string) []string {
	var phrases []string
	var cur strings.Builder

	flush := func() {
		if p := strings.TrimSpace(cur.String()); p != "" {
			phrases = append(phrases, p)
		}
		cur.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\n', '.', ';':
			flush()
		case ',':
			if startsClause(runes[i+1:]) {
				flush()
			} else {
				cur.WriteRune(r)
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return phrases
}

// startsClause reports whether the text after a comma begins (past optional
// spaces) with an uppercase letter or digit.
func startsClause(rest []rune) bool {
	for _, r := range rest {
		if r == ' ' || r == '\t' {
			continue
		}
		return unicode.IsUpper(r) || unicode.IsDigit(r)
	}
	return false
}
