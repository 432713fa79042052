// Package parse converts raw text lines into the typed models rendered by
// VizForge: a flowchart graph, a relation-diagram graph, or a chart series.
//
// Parsing is pattern-based extraction, not language understanding. Lines that
// match no recognized form fall through to the most permissive case (plain
// sequential step for flowcharts) or are silently skipped (charts); parsing
// never fails.
package parse

import (
	"regexp"
	"strings"

	"github.com/vizforge/vizforge/pkg/model"
)

var (
	arrowSplit    = regexp.MustCompile(`\s*→\s*|\s*->\s*`)
	ifThenElse    = regexp.MustCompile(`(?i)^if\s+(.+?)\s+then\s+(.+?)(?:\s+else\s+(.+))?$`)
	branchToken   = regexp.MustCompile(`(?i)\b(yes|no)\s*:`)
	yesPrefix     = regexp.MustCompile(`(?i)^yes\s*:\s*`)
	noToken       = regexp.MustCompile(`(?i)\bno\s*:\s*`)
	stepPrefix    = regexp.MustCompile(`(?i)^step\s*\d+\s*:\s*(.+)$`)
	terminalWords = regexp.MustCompile(`(?i)\b(start|begin|end|finish)\b`)
	decisionWords = regexp.MustCompile(`(?i)\b(decision|check|validate|verify)\b`)
)

// flowContext is the parser state carried from line to line.
// Keeping it explicit (rather than free variables in a loop) makes the line
// state machine testable in isolation.
type flowContext struct {
	graph *model.Graph

	// lastDecision is the node ID of the most recently seen decision.
	// Standalone Yes:/No: lines attach their branches to it.
	lastDecision int

	// lastNonDecision is the node ID of the most recent plain step.
	lastNonDecision int

	// backbone is the ordered list of node IDs from plain sequential lines.
	// The repair pass uses it to resolve a decision's "No" successor and to
	// chain unconnected adjacent steps.
	backbone []int
}

func newFlowContext() *flowContext {
	return &flowContext{
		graph:           model.NewGraph(),
		lastDecision:    -1,
		lastNonDecision: -1,
	}
}

// Flowchart parses line-oriented text into a flowchart graph.
//
// Each non-blank line is classified into exactly one form, tested in priority
// order: if/then/else, standalone Yes:/No: branch, arrow chain, plain
// sequential step. A second pass then repairs decision branch targets, whose
// true successors are textually distant: Yes exits toward the "End" terminal,
// No resumes the main sequence.
func Flowchart(text string) *model.Graph {
	ctx := newFlowContext()

	for _, line := range splitLines(text) {
		switch {
		case ifThenElse.MatchString(line):
			ctx.parseIfThen(line)
		case branchToken.MatchString(line) && !arrowSplit.MatchString(line):
			ctx.parseBranchLine(line)
		case arrowSplit.MatchString(line):
			ctx.parseArrowChain(line)
		default:
			ctx.parseSequential(line)
		}
	}

	ctx.repairConnections()
	ctx.chainBackbone()
	return ctx.graph
}

// roleFor classifies a step label: decision beats terminal beats process.
func roleFor(label string) model.Role {
	if strings.Contains(label, "?") || decisionWords.MatchString(label) {
		return model.RoleDecision
	}
	if terminalWords.MatchString(label) {
		return model.RoleTerminal
	}
	return model.RoleProcess
}

// actionRole classifies a branch action: terminal or process, never decision.
func actionRole(label string) model.Role {
	if terminalWords.MatchString(label) {
		return model.RoleTerminal
	}
	return model.RoleProcess
}

// parseIfThen handles "if <cond> then <action> [else <action>]".
// The condition becomes a decision node (suffixed with "?" when missing),
// the then-action a Yes branch and the else-action a No branch.
func (c *flowContext) parseIfThen(line string) {
	m := ifThenElse.FindStringSubmatch(line)
	cond := strings.TrimSpace(m[1])
	then := strings.TrimSpace(m[2])
	els := strings.TrimSpace(m[3])

	label := cond
	if !strings.HasSuffix(label, "?") {
		label += "?"
	}
	decision := c.graph.AddNode(label, model.RoleDecision)
	c.lastDecision = decision

	if then != "" {
		c.graph.AddEdge(decision, c.graph.AddNode(then, actionRole(then)), model.EdgeYes)
	}
	if els != "" {
		c.graph.AddEdge(decision, c.graph.AddNode(els, actionRole(els)), model.EdgeNo)
	}
}

// parseBranchLine handles standalone "Yes: ..." / "No: ..." lines, attaching
// each captured branch to the most recently seen decision node.
func (c *flowContext) parseBranchLine(line string) {
	yes, no := splitBranches(line)
	if c.lastDecision < 0 {
		return // branch line with no preceding decision, nothing to attach to
	}
	if yes != "" {
		c.graph.AddEdge(c.lastDecision, c.graph.AddNode(yes, actionRole(yes)), model.EdgeYes)
	}
	if no != "" {
		c.graph.AddEdge(c.lastDecision, c.graph.AddNode(no, actionRole(no)), model.EdgeNo)
	}
}

// splitBranches extracts the Yes and No texts from a branch line.
// "Yes: A No: B" yields ("A", "B"); a line may carry either or both.
func splitBranches(line string) (yes, no string) {
	noLoc := noToken.FindStringIndex(line)
	if m := yesPrefix.FindStringIndex(line); m != nil {
		end := len(line)
		if noLoc != nil && noLoc[0] > m[1] {
			end = noLoc[0]
		}
		yes = strings.TrimSpace(line[m[1]:end])
	}
	if noLoc != nil {
		no = strings.TrimSpace(line[noLoc[1]:])
	}
	return yes, no
}

// parseArrowChain handles "A -> B -> C" lines. Segments may themselves be
// if/then or Yes:/No: forms; plain segments connect sequentially, except that
// a segment is not auto-connected to a following Yes/No segment (the labeled
// branch edge supersedes the sequential one).
func (c *flowContext) parseArrowChain(line string) {
	parts := arrowSplit.Split(line, -1)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if ifThenElse.MatchString(part) {
			c.parseIfThen(part)
			continue
		}

		if branchToken.MatchString(part) {
			yes, no := splitBranches(part)
			if c.lastDecision >= 0 {
				if yes != "" {
					c.graph.AddEdge(c.lastDecision, c.graph.AddNode(yes, actionRole(yes)), model.EdgeYes)
				}
				if no != "" {
					c.graph.AddEdge(c.lastDecision, c.graph.AddNode(no, actionRole(no)), model.EdgeNo)
				}
			}
			continue
		}

		role := roleFor(part)
		id := c.graph.AddNode(part, role)
		if role == model.RoleDecision {
			c.lastDecision = id
		} else {
			c.lastNonDecision = id
		}

		if i < len(parts)-1 {
			next := strings.TrimSpace(parts[i+1])
			if next != "" && !branchToken.MatchString(next) {
				c.graph.AddEdge(id, c.graph.AddNode(next, roleFor(next)), "")
			}
		}
	}
}

// parseSequential handles a plain line: one node, appended to the backbone.
// A leading "Step N:" prefix is unwrapped before classification.
func (c *flowContext) parseSequential(line string) {
	label := line
	if m := stepPrefix.FindStringSubmatch(line); m != nil {
		label = strings.TrimSpace(m[1])
	}

	role := roleFor(label)
	id := c.graph.AddNode(label, role)
	if role == model.RoleDecision {
		c.lastDecision = id
	} else {
		c.lastNonDecision = id
	}
	c.backbone = append(c.backbone, id)
}

// repairConnections rewires decision branch targets after the line pass.
//
// For every decision with both a Yes and a No edge: the Yes target is
// connected onward to the terminal node whose label contains "end" (the flow
// exits), and the No target to the backbone entry following the decision (the
// flow resumes). This encodes the narrow "Yes exits, No resumes" policy of
// authentication-style flows; decisions shaped differently may be miswired,
// which is accepted behavior rather than generalized.
func (c *flowContext) repairConnections() {
	endID := c.findEndTerminal()

	for _, n := range c.graph.Nodes() {
		if n.Role != model.RoleDecision {
			continue
		}
		yesTo, noTo := -1, -1
		for _, e := range c.graph.Children(n.ID) {
			switch e.Label {
			case model.EdgeYes:
				yesTo = e.To
			case model.EdgeNo:
				noTo = e.To
			}
		}
		if yesTo < 0 || noTo < 0 {
			continue
		}

		if endID >= 0 && yesTo != endID && !c.graph.HasEdge(yesTo, endID) {
			c.graph.AddEdge(yesTo, endID, "")
		}

		if next := c.backboneSuccessor(n.ID); next >= 0 && noTo != next && !c.graph.HasEdge(noTo, next) {
			c.graph.AddEdge(noTo, next, "")
		}
	}
}

// findEndTerminal returns the first terminal node whose label contains "end",
// or -1. With zero or multiple candidates the first one (or none) wins; the
// heuristic is not generalized beyond that.
func (c *flowContext) findEndTerminal() int {
	for _, n := range c.graph.Nodes() {
		if n.Role == model.RoleTerminal && strings.Contains(strings.ToLower(n.Label), "end") {
			return n.ID
		}
	}
	return -1
}

// backboneSuccessor returns the backbone entry immediately after the given
// node, or -1 if the node is not on the backbone or is its last entry.
func (c *flowContext) backboneSuccessor(id int) int {
	for i, b := range c.backbone {
		if b == id && i+1 < len(c.backbone) {
			return c.backbone[i+1]
		}
	}
	return -1
}

// chainBackbone adds a plain sequential edge between adjacent backbone
// entries that are not already connected, skipping decision sources (their
// outgoing flow is the labeled branches).
func (c *flowContext) chainBackbone() {
	for i := 0; i+1 < len(c.backbone); i++ {
		from, to := c.backbone[i], c.backbone[i+1]
		if n, ok := c.graph.Node(from); ok && n.Role == model.RoleDecision {
			continue
		}
		if c.graph.HasEdge(from, to) {
			continue
		}
		c.graph.AddEdge(from, to, "")
	}
}

// splitLines returns the trimmed, non-blank lines of text.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
