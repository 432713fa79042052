// Package classify decides which artifact kind a piece of text should become.
//
// Classification is heuristic surface matching, not language understanding.
// The rules are an explicit ordered list so the tie-break order is a visible,
// testable artifact: chart signals are checked before flowchart signals
// because numeric-series text can incidentally contain flow keywords.
package classify

import (
	"regexp"
	"strings"

	"github.com/vizforge/vizforge/pkg/model"
)

var (
	keyValue     = regexp.MustCompile(`[:=]\s*\d+`)
	periodToken  = regexp.MustCompile(`(?i)\b(q1|q2|q3|q4|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)
	flowKeywords = regexp.MustCompile(`(?i)\b(start|begin|end|finish|step|process)\b`)
	yesNoToken   = regexp.MustCompile(`(?i)\b(yes|no)\s*:`)
	ifThen       = regexp.MustCompile(`(?i)\bif\b[\s\S]*\bthen\b`)
)

// Rule is a single classification rule: if Match reports true for the text,
// the rule's Kind wins. Rules are evaluated in order, first match wins.
type Rule struct {
	Name  string
	Kind  model.Kind
	Match func(text string) bool
}

// Rules is the ordered rule list used by Classify.
// The final diagram rule always matches, so classification is total.
var Rules = []Rule{
	{
		Name: "chart-series",
		Kind: model.KindChart,
		Match: func(text string) bool {
			kvs := keyValue.FindAllStringIndex(text, -1)
			if len(kvs) >= 3 {
				return true
			}
			return len(kvs) > 0 && periodToken.MatchString(text)
		},
	},
	{
		Name: "flow-structure",
		Kind: model.KindFlowchart,
		Match: func(text string) bool {
			return flowKeywords.MatchString(text) ||
				strings.Contains(text, "?") ||
				yesNoToken.MatchString(text) ||
				ifThen.MatchString(text)
		},
	},
	{
		Name:  "relation-fallback",
		Kind:  model.KindDiagram,
		Match: func(string) bool { return true },
	},
}

// Classify returns the artifact kind for the text.
// A concrete hint always wins unchanged; the text is not consulted. With
// KindAuto the ordered rule list decides. Classify never fails: the fallback
// rule guarantees a result for any input, including the empty string.
func Classify(text string, hint model.Kind) model.Kind {
	if hint.IsConcrete() {
		return hint
	}
	for _, r := range Rules {
		if r.Match(text) {
			return r.Kind
		}
	}
	return model.KindDiagram // unreachable, fallback rule always matches
}
