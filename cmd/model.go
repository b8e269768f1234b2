package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/spf13/cobra"
)

const providerHelp = `The default provider (model.provider=lexical) needs no network and compares
spelling only: "hello" matches "hello!" but "hi" does not match "hello".
Semantic matching of paraphrases needs model.provider=ollama (local daemon) or
model.provider=genai (Gemini API key, see "wordbot auth set-key").`

func newModelCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage the linguistic model",
		Long:  "Manage the linguistic model.\n\n" + providerHelp,
	}

	cmd.AddCommand(newModelInstallCmd(app), newModelStatusCmd(app))

	return cmd
}

func newModelInstallCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the configured linguistic model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			label := fmt.Sprintf("Installing %s model %s...", app.cfg.Model.Provider, app.cfg.Model.Name)
			if err := runModelInstallSpinner(cmd.Context(), cmd.ErrOrStderr(), label, app.loader.Install); err != nil {
				return fmt.Errorf("install linguistic model: %w", err)
			}

			model, err := app.loader.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load linguistic model after install: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "installed %s (%s)\n", model.Name(), app.cfg.Model.Provider)
			return err
		},
	}
}

func newModelStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the configured linguistic model and every installed model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			state := "ready"
			if _, err := app.loader.Load(cmd.Context()); err != nil {
				state = "unavailable: " + err.Error()
				if errors.Is(err, domain.ErrModelNotInstalled) {
					state = "not installed (run `wordbot model install`)"
				}
			}

			if _, err := fmt.Fprintf(out, "provider: %s\nmodel: %s\nstatus: %s\n",
				app.cfg.Model.Provider, app.cfg.Model.Name, state); err != nil {
				return err
			}

			manifests, err := app.manifests.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list installed models: %w", err)
			}

			if _, err := fmt.Fprintf(out, "\ninstalled models (%s):\n", app.manifests.Path()); err != nil {
				return err
			}
			if len(manifests) == 0 {
				_, err = fmt.Fprintln(out, "  none")
				return err
			}

			for _, manifest := range manifests {
				if _, err := fmt.Fprintln(out, manifestLine(manifest, app.cfg.Model.Name)); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// manifestLine renders one installed model, marking the configured one.
func manifestLine(manifest domain.ModelManifest, active string) string {
	marker := " "
	if manifest.Name == active {
		marker = "*"
	}

	line := fmt.Sprintf("%s %s (%s)", marker, manifest.Name, manifest.Provider)
	if manifest.Provider == domain.ModelProviderLexical {
		line += fmt.Sprintf(" dimensions=%d ngram=%d", manifest.Dimensions, manifest.NGramSize)
	}
	if !manifest.InstalledAt.IsZero() {
		line += " installed " + manifest.InstalledAt.Format(time.RFC3339)
	}

	return line
}
