package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordbot",
		Short:         "WordBot: classify text, chat, and analyze grammar",
		Long:          "wordbot detects numbers and symbol-only input, answers short conversational turns by semantic similarity to known intents, and summarizes the grammatical structure of longer sentences.\n\n" + providerHelp,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAnalyzeCmd(app),
		newChatCmd(app),
		newModelCmd(app),
		newIntentsCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
