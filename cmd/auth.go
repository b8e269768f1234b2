package cmd

import (
	"fmt"
	"strings"

	filestore "github.com/bnema/wordbot/internal/adapters/secrets/file"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API keys of hosted embedding providers",
	}

	cmd.AddCommand(newAuthSetKeyCmd(app), newAuthRemoveKeyCmd(app))

	return cmd
}

func newAuthSetKeyCmd(app *app) *cobra.Command {
	var provider string
	var value string

	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store a provider API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hosted, err := parseHostedProvider(provider)
			if err != nil {
				return err
			}

			if err := app.secretStore.Put(cmd.Context(), filestore.APIKeyRef(hosted), strings.TrimSpace(value)); err != nil {
				return fmt.Errorf("store %s API key: %w", hosted, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s API key\n", hosted)
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", string(domain.ModelProviderGenAI), "Hosted provider (genai)")
	cmd.Flags().StringVar(&value, "value", "", "API key")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newAuthRemoveKeyCmd(app *app) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "remove-key",
		Short: "Delete a stored provider API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hosted, err := parseHostedProvider(provider)
			if err != nil {
				return err
			}

			if err := app.secretStore.Delete(cmd.Context(), filestore.APIKeyRef(hosted)); err != nil {
				return fmt.Errorf("remove %s API key: %w", hosted, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s API key\n", hosted)
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", string(domain.ModelProviderGenAI), "Hosted provider (genai)")

	return cmd
}

func parseHostedProvider(raw string) (domain.ModelProvider, error) {
	provider := domain.ModelProvider(strings.ToLower(strings.TrimSpace(raw)))
	switch provider {
	case domain.ModelProviderGenAI:
		return provider, nil
	default:
		return "", fmt.Errorf("unsupported provider %q: only genai uses an API key", raw)
	}
}
