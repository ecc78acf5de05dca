package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jobpost-backend/internal/jobposts"
)

func newDetectCmd() *cobra.Command {
	var prompt, promptFile string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "detect [prompt]",
		Short: "Show which job post details a prompt mentions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				prompt = args[0]
			}
			text, err := readPrompt(cmd, prompt, promptFile)
			if err != nil {
				return err
			}
			detection := jobposts.Detect(text)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(detection)
			}
			for _, item := range detection.Checklist() {
				mark := " "
				if item.Active {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %s\n", mark, item.Label)
			}
			if !detection.Complete() && strings.TrimSpace(text) != "" {
				fmt.Fprintln(out, "Tip: mention the unchecked details for a more specific post.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Hiring prompt")
	cmd.Flags().StringVar(&promptFile, "prompt-file", "", "Read the prompt from a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the detection as JSON")
	return cmd
}
