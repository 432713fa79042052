package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vizforge/vizforge/pkg/model"
	"github.com/vizforge/vizforge/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Built-in Samples
// =============================================================================

// sample is a built-in example input.
type sample struct {
	Name string
	Kind model.Kind
	Text string
}

var samples = []sample{
	{
		Name: "deploy-flow",
		Kind: model.KindFlowchart,
		Text: "Push to main\nRun tests\nTests pass?\nBuild image\nDeploy to staging\nSmoke tests pass?\nPromote to production\nEnd",
	},
	{
		Name: "signup-flow",
		Kind: model.KindFlowchart,
		Text: "Start\nUser submits form\nEmail valid?\nCreate account\nSend welcome mail\nEnd",
	},
	{
		Name: "service-map",
		Kind: model.KindDiagram,
		Text: "Gateway -> Auth\nGateway -> Orders\nOrders -> Billing\nOrders -> Inventory\nBilling -> Ledger",
	},
	{
		Name: "team-structure",
		Kind: model.KindDiagram,
		Text: "CTO -> Platform\nCTO -> Product\nPlatform -> Infra\nPlatform -> Tooling\nProduct -> Web\nProduct -> Mobile",
	},
	{
		Name: "quarterly-revenue",
		Kind: model.KindChart,
		Text: "Q1: 120\nQ2: 145\nQ3: 138\nQ4: 171",
	},
	{
		Name: "language-share",
		Kind: model.KindChart,
		Text: "Go: 42\nPython: 31\nTypeScript: 18\nRust: 9",
	},
}

// findSample looks up a built-in sample by name.
func findSample(name string) (sample, bool) {
	for _, s := range samples {
		if s.Name == name {
			return s, true
		}
	}
	return sample{}, false
}

// =============================================================================
// Command
// =============================================================================

// examplesCommand creates the examples command with an interactive picker.
func (c *CLI) examplesCommand() *cobra.Command {
	var (
		list       bool
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "examples [name]",
		Short: "Browse and render built-in examples",
		Long: `Browse the built-in example inputs and render one.

Without arguments an interactive picker opens. With a name argument (or
--list to see the names) the picker is skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, s := range samples {
					printKeyValue(s.Name, string(s.Kind))
				}
				return nil
			}

			var chosen sample
			if len(args) == 1 {
				s, ok := findSample(args[0])
				if !ok {
					return fmt.Errorf("unknown example: %s", args[0])
				}
				chosen = s
			} else {
				m := newExampleListModel(samples)
				final, err := tea.NewProgram(m).Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				result, ok := final.(exampleListModel)
				if !ok || result.Selected == nil {
					printInfo("No example selected")
					return nil
				}
				chosen = *result.Selected
			}

			opts := pipeline.Options{
				Text:    chosen.Text,
				Kind:    string(chosen.Kind),
				Formats: parseFormats(formatsStr),
				Redact:  true,
			}
			if err := c.runGenerate(cmd.Context(), chosen.Name, "", opts, false, false); err != nil {
				return err
			}
			printNextStep("Try your own", "vizforge generate your-notes.txt")
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print example names instead of opening the picker")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json, dot, png (comma-separated)")

	return cmd
}

// =============================================================================
// ExampleListModel - Interactive example selection
// =============================================================================

// exampleListModel is the bubbletea model for the example picker.
type exampleListModel struct {
	Samples  []sample
	Cursor   int
	Selected *sample
	Height   int
	Offset   int
}

// newExampleListModel creates a new example list model.
func newExampleListModel(items []sample) exampleListModel {
	return exampleListModel{
		Samples: items,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m exampleListModel) Init() tea.Cmd {
	return nil
}

func (m exampleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Samples)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			s := m.Samples[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m exampleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Example"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Samples) {
		end = len(m.Samples)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Samples[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		preview := previewLine(s.Text, 48)
		rows = append(rows, []string{cursor, s.Name, string(s.Kind), preview})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Example", "Kind", "Input").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				if col == 3 {
					return listDimStyle.Bold(true)
				}
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Samples))))

	return b.String()
}

// previewLine flattens sample text to one line and truncates it to max
// runes. The line separator is multibyte, so truncation counts runes
// rather than bytes.
func previewLine(text string, max int) string {
	preview := strings.ReplaceAll(text, "\n", " · ")
	r := []rune(preview)
	if len(r) > max {
		preview = string(r[:max-3]) + "..."
	}
	return preview
}
