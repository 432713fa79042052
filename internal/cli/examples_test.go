package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vizforge/vizforge/pkg/model"
	"github.com/vizforge/vizforge/pkg/pipeline"
)

func TestSamplesClassify(t *testing.T) {
	// Every built-in sample should classify as its declared kind.
	for _, s := range samples {
		got := pipeline.Classify(s.Text, model.KindAuto)
		if got != s.Kind {
			t.Errorf("sample %s: classified as %s, want %s", s.Name, got, s.Kind)
		}
	}
}

func TestFindSample(t *testing.T) {
	s, ok := findSample("deploy-flow")
	if !ok {
		t.Fatal("findSample(deploy-flow) not found")
	}
	if s.Kind != model.KindFlowchart {
		t.Errorf("deploy-flow kind = %s, want flowchart", s.Kind)
	}

	if _, ok := findSample("nope"); ok {
		t.Error("findSample(nope) should not be found")
	}
}

func TestExampleListModelNavigation(t *testing.T) {
	m := newExampleListModel(samples)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(exampleListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(exampleListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.Cursor)
	}

	// Up at the top stays put
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(exampleListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor should not go negative, got %d", m.Cursor)
	}
}

func TestExampleListModelSelect(t *testing.T) {
	m := newExampleListModel(samples)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(exampleListModel)
	if m.Selected == nil {
		t.Fatal("enter should select the sample under the cursor")
	}
	if m.Selected.Name != samples[0].Name {
		t.Errorf("selected %s, want %s", m.Selected.Name, samples[0].Name)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestExampleListModelQuit(t *testing.T) {
	m := newExampleListModel(samples)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(exampleListModel)
	if m.Selected != nil {
		t.Error("quit should not select anything")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestPreviewLine(t *testing.T) {
	short := previewLine("Start\nEnd", 48)
	if short != "Start · End" {
		t.Errorf("previewLine short = %q, want %q", short, "Start · End")
	}

	// A long multi-line sample truncates on rune boundaries, so the
	// "·" separators never get cut in half.
	long := previewLine(strings.Repeat("step\n", 20), 48)
	if got := len([]rune(long)); got != 48 {
		t.Errorf("previewLine length = %d runes, want 48", got)
	}
	if !strings.HasSuffix(long, "...") {
		t.Errorf("previewLine = %q, want ... suffix", long)
	}
	if !utf8.ValidString(long) {
		t.Errorf("previewLine = %q, not valid UTF-8", long)
	}
}

func TestExampleListModelView(t *testing.T) {
	m := newExampleListModel(samples)
	view := m.View()

	if view == "" {
		t.Fatal("view should not be empty")
	}
	for _, want := range []string{"Select Example", "deploy-flow", "quarterly-revenue"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
