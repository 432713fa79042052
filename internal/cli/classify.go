package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizforge/vizforge/pkg/model"
	"github.com/vizforge/vizforge/pkg/pipeline"
)

// classifyCommand creates the classify command for inspecting kind detection.
func (c *CLI) classifyCommand() *cobra.Command {
	var (
		literal string
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Detect the visual kind for a text",
		Long: `Detect which visual kind (flowchart, diagram, chart) the classifier
picks for the given text, without compiling it.

The input is read from the given file, or from stdin when the file is
omitted or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			text := literal
			if text == "" {
				var err error
				text, err = readInput(input)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			}

			kind := pipeline.Classify(text, model.KindAuto)
			if quiet {
				fmt.Println(kind)
				return nil
			}

			printKeyValue("Kind", string(kind))
			printNextStep("Compile it", fmt.Sprintf("vizforge generate %s --kind %s", inputArg(input), kind))
			return nil
		},
	}

	cmd.Flags().StringVarP(&literal, "text", "t", "", "literal input text (instead of a file)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the kind")

	return cmd
}

// inputArg renders the input argument for display in a suggested command.
func inputArg(input string) string {
	if input == "" {
		return "-"
	}
	return input
}
