package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/config"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
)

type cli struct {
	verbose bool
	log     *logger.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:   "copygen",
		Short: "Cold outreach email copy generator",
		Long: `copygen builds cold outreach email variations for a client profile.

Each variation is built around a different hook from the catalog. With --llm
and GEMINI_API_KEY set, Gemini writes the copy; otherwise, or whenever the
model call fails, the template engine does.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.log != nil {
				return nil
			}
			config.LoadDotEnv()
			if !app.verbose {
				app.log = logger.Nop()
				return nil
			}
			log, err := logger.New(os.Getenv("LOG_MODE"))
			if err != nil {
				return err
			}
			app.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.log != nil {
				app.log.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log to stderr")

	root.AddCommand(newGenerateCmd(app), newHooksCmd())
	return root
}
