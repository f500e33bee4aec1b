package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/config"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/copyengine"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/profiler"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/website"
)

type generateOptions struct {
	profile models.ClientProfile
	count   int
	seed    int64
	useLLM  bool
}

func newGenerateCmd(app *cli) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate email variations for a client",
		Example: `  copygen generate --client "Acme" --industry SaaS --website https://acme.io \
    --strategy "Pricing is confusing. Onboarding takes too long." --count 3 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.profile.ClientName, "client", "", "Client name (required)")
	f.StringVar(&opts.profile.Industry, "industry", "", "Client industry (required)")
	f.StringVar(&opts.profile.Audience, "audience", "", "Target audience")
	f.StringVar(&opts.profile.Website, "website", "", "Client website (required)")
	f.StringVar(&opts.profile.Strategy, "strategy", "", "Strategy notes (required)")
	f.IntVarP(&opts.count, "count", "n", 4, "Number of variations")
	f.Int64Var(&opts.seed, "seed", 0, "Seed for reproducible template output (0 picks a random seed)")
	f.BoolVar(&opts.useLLM, "llm", false, "Use Gemini when GEMINI_API_KEY is set")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *cli, opts generateOptions) error {
	ctx := cmd.Context()
	cfg := config.Load(app.log)

	engineOpts := []copyengine.Option{
		copyengine.WithWebsite(website.NewAnalyzer(cfg.SiteTimeout, app.log)),
		copyengine.WithLLMTimeout(cfg.LLMTimeout),
	}
	if opts.seed != 0 {
		engineOpts = append(engineOpts, copyengine.WithRand(copyengine.Seeded(opts.seed)))
	}

	if opts.useLLM {
		if !cfg.LLMEnabled() {
			return fmt.Errorf("--llm needs GEMINI_API_KEY")
		}
		client, err := profiler.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer client.Close()
		engineOpts = append(engineOpts, copyengine.WithLLM(client))
	}

	resp, err := copyengine.NewEngine(app.log, engineOpts...).Generate(ctx, opts.profile, opts.count)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
