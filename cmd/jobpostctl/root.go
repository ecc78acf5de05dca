package main

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"jobpost-backend/internal/shared/config"
	"jobpost-backend/internal/shared/telemetry"
)

var readFile = os.ReadFile

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "jobpostctl",
		Short: "Draft job posts with Gemini from the command line",
		Long: `jobpostctl runs the same generation pipeline as the API server:
organization details are woven into the prompt, Gemini drafts the post and
the markdown is cleaned before it is printed.

Example:
  jobpostctl generate --prompt "hiring a senior Go engineer, remote, $150k" --org-name Acme
  echo "looking for a designer" | jobpostctl detect`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			_, err := telemetry.Init(config.Load().Env)
			return err
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline events to stderr")
	root.AddCommand(newGenerateCmd(), newDetectCmd())
	return root
}

// readPrompt resolves the prompt from, in order, the flag value, a file and stdin.
func readPrompt(cmd *cobra.Command, prompt, promptFile string) (string, error) {
	if strings.TrimSpace(prompt) != "" {
		return prompt, nil
	}
	if promptFile != "" {
		data, err := readFile(promptFile)
		if err != nil {
			return "", errors.Wrapf(err, "read prompt file %s", promptFile)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "read prompt from stdin")
	}
	return string(data), nil
}
