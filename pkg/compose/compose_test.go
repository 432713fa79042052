package compose

import (
	"strings"
	"testing"

	"github.com/vizforge/vizforge/pkg/model"
)

func TestDocument(t *testing.T) {
	frag := []byte(`<svg width="10" height="10"><rect class="bar"/></svg>`)
	out, err := Document(model.KindChart, frag)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Generated Chart",
		string(frag),
		".bar:hover",
		"visual-container",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(doc, "&lt;svg") {
		t.Error("fragment was escaped instead of embedded")
	}
}

func TestDocumentEmptyFragment(t *testing.T) {
	if _, err := Document(model.KindFlowchart, nil); err == nil {
		t.Fatal("expected error for empty fragment")
	}
}
