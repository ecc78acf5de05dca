package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"jobpost-backend/internal/jobposts"
	"jobpost-backend/internal/llm"
	"jobpost-backend/internal/llm/gemini"
)

type generateOptions struct {
	prompt     string
	promptFile string
	apiKey     string
	model      string
	baseURL    string
	dryRun     bool
	timeout    time.Duration
	org        jobposts.OrganizationContext
}

// newGenerator is replaced in tests.
var newGenerator = func(o generateOptions) llm.Generator {
	var opts []gemini.Option
	if o.model != "" {
		opts = append(opts, gemini.WithModel(o.model))
	}
	if o.baseURL != "" {
		opts = append(opts, gemini.WithBaseURL(o.baseURL))
	}
	return gemini.NewClient(opts...)
}

func newGenerateCmd() *cobra.Command {
	var o generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a job post",
		Long: `Generate a markdown job post from a free-text hiring prompt.

The prompt is read from --prompt, --prompt-file or stdin. The Gemini API key
comes from --api-key or GEMINI_API_KEY. With --dry-run the enhanced prompt is
printed and no request is made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.prompt, "prompt", "p", "", "Hiring prompt")
	f.StringVar(&o.promptFile, "prompt-file", "", "Read the prompt from a file")
	f.StringVar(&o.apiKey, "api-key", "", "Gemini API key (default $GEMINI_API_KEY)")
	f.StringVar(&o.model, "model", "", "Gemini model (default "+gemini.DefaultModel+")")
	f.StringVar(&o.baseURL, "base-url", "", "Override the Gemini API base URL")
	f.BoolVar(&o.dryRun, "dry-run", false, "Print the enhanced prompt without calling Gemini")
	f.DurationVar(&o.timeout, "timeout", 2*time.Minute, "Request timeout")
	f.StringVar(&o.org.Name, "org-name", "", "Company name")
	f.StringVar(&o.org.Industry, "org-industry", "", "Industry")
	f.StringVar(&o.org.Location, "org-location", "", "Company location")
	f.StringVar(&o.org.CompanySize, "org-size", "", "Company size")
	f.StringVar(&o.org.Website, "org-website", "", "Company website")
	f.StringVar(&o.org.Email, "org-email", "", "Contact email")
	f.StringVar(&o.org.Description, "org-description", "", "About the company")
	return cmd
}

func runGenerate(cmd *cobra.Command, o generateOptions) error {
	prompt, err := readPrompt(cmd, o.prompt, o.promptFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return errors.New("a prompt is required (use --prompt, --prompt-file or stdin)")
	}

	if o.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), jobposts.Enrich(prompt, &o.org))
		return nil
	}

	apiKey := o.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	svc := &jobposts.Service{Generator: newGenerator(o)}
	result, err := svc.Generate(ctx, jobposts.GenerateInput{
		Prompt:           prompt,
		AccessToken:      apiKey,
		OrganizationData: &o.org,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Content)
	return nil
}
