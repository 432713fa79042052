package classify

import (
	"testing"

	"github.com/vizforge/vizforge/pkg/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Kind
	}{
		{"quarters with values", "Q1: 1000\nQ2: 2000", model.KindChart},
		{"three kv pairs no period", "alpha: 1\nbeta: 2\ngamma: 3", model.KindChart},
		{"month token with value", "Revenue in Jan = 500", model.KindChart},
		{"two kv pairs no period token", "alpha: 1\nbeta: 2", model.KindDiagram},
		{"start keyword", "Start\nDo work\nEnd", model.KindFlowchart},
		{"question mark", "User valid?\nShow page", model.KindFlowchart},
		{"yes colon", "Yes: load dashboard", model.KindFlowchart},
		{"if then", "if logged in then show home", model.KindFlowchart},
		{"plain relations", "Client connects to Server", model.KindDiagram},
		{"empty input", "", model.KindDiagram},
		// Chart wins over flowchart when both signal: numeric series text
		// often mentions "process" or similar keywords.
		{"chart beats flow keywords", "process Q1: 10\nprocess Q2: 20\nprocess Q3: 30", model.KindChart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text, model.KindAuto); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyHintWins(t *testing.T) {
	// An explicit hint is never second-guessed against the content.
	text := "Q1: 1\nQ2: 2\nQ3: 3"
	if got := Classify(text, model.KindFlowchart); got != model.KindFlowchart {
		t.Errorf("hint should win, got %v", got)
	}
	if got := Classify("", model.KindChart); got != model.KindChart {
		t.Errorf("hint should win on empty text, got %v", got)
	}
}

func TestClassifyTotal(t *testing.T) {
	inputs := []string{"", "\n\n", "???", "-> -> ->", ": = : =", "日本語テキスト"}
	for _, in := range inputs {
		got := Classify(in, model.KindAuto)
		if !got.IsConcrete() {
			t.Errorf("Classify(%q) returned non-concrete kind %v", in, got)
		}
	}
}

func TestRuleOrder(t *testing.T) {
	// The rule list is the contract: chart first, flowchart second,
	// diagram as the always-matching fallback.
	if len(Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(Rules))
	}
	wantKinds := []model.Kind{model.KindChart, model.KindFlowchart, model.KindDiagram}
	for i, r := range Rules {
		if r.Kind != wantKinds[i] {
			t.Errorf("rule %d kind = %v, want %v", i, r.Kind, wantKinds[i])
		}
	}
	if !Rules[len(Rules)-1].Match("") {
		t.Error("fallback rule must match any input")
	}
}
