package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/wordbot/internal/adapters/render/transcript"
	"github.com/bnema/wordbot/internal/adapters/tui"
	"github.com/bnema/wordbot/internal/application"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newChatCmd(app *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat with WordBot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !plain {
				logger, err := logging.New(logging.Options{Level: app.cfg.Log.Level, File: app.cfg.ChatLogFile()})
				if err != nil {
					return fmt.Errorf("open chat log: %w", err)
				}
				app.withLogger(logger)
			}

			ctx := cmd.Context()
			p, err := app.loadPipeline(ctx)
			if err != nil {
				return err
			}

			service := application.NewChatService(p.dispatcher, app.clock, app.logger)
			session := service.NewSession()
			app.logger.Info("chat session started",
				zap.String("session", session.ID),
				zap.String("model", p.model.Name()),
			)

			if plain {
				return runPlainChat(cmd, service, session)
			}

			return tui.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), service, session,
				tui.WithModelName(p.model.Name()),
			)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Use a line-oriented prompt instead of the terminal UI")

	return cmd
}

// runPlainChat reads one message per line until EOF, "quit" or "exit".
func runPlainChat(cmd *cobra.Command, service *application.ChatService, session *domain.Session) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s\n%s\n\n", tui.Title, tui.Subtitle); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if _, err := fmt.Fprint(out, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit":
			return nil
		}

		reply, ok := service.Submit(cmd.Context(), session, line)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(out, transcript.Line(reply)); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}

	_, err := fmt.Fprintln(out)
	return err
}
