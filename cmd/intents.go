package cmd

import (
	"fmt"
	"strings"

	intentsrender "github.com/bnema/wordbot/internal/adapters/render/intents"
	"github.com/bnema/wordbot/internal/application"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/spf13/cobra"
)

func newIntentsCmd(app *app) *cobra.Command {
	var probe string

	cmd := &cobra.Command{
		Use:   "intents",
		Short: "Show the active intent table",
		Long:  "Show the active intent table. With --probe, also show how similar a phrase is to every intent and which one WordBot would answer with.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := intentsrender.RenderOptions{}

			if strings.TrimSpace(probe) == "" {
				table, err := app.intentSource.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load intents: %w", err)
				}
				return writeIntents(cmd, app, table, opts)
			}

			p, err := app.loadPipeline(cmd.Context())
			if err != nil {
				return err
			}

			matcher := application.NewMatcher(p.model, p.intents, application.WithMatcherLogger(app.logger))
			opts.ModelName = p.model.Name()
			opts.Probe = probe
			opts.Scores = intentsrender.ScoresFor(matcher.Scores(cmd.Context(), application.NormalizeInput(probe)))

			return writeIntents(cmd, app, p.intents, opts)
		},
	}

	cmd.Flags().StringVar(&probe, "probe", "", "Score a phrase against every intent")

	return cmd
}

func writeIntents(cmd *cobra.Command, app *app, table domain.IntentTable, opts intentsrender.RenderOptions) error {
	rendered, err := app.intentRenderer(table, opts)
	if err != nil {
		return fmt.Errorf("render intents: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
