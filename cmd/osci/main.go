// Command osci is a terminal client for chatting with an agent about the
// code of a GitHub repository.
//
// Usage:
//
//	osci [flags] [repository-url]
//
// Flags:
//
//	--config string         YAML config file (default $HOME/.osci/config.yaml)
//	--backend-url string    Backend base URL (env OSCI_BACKEND_URL or API_BACKEND_URL)
//	--user-id string        User the chat sessions are opened for
//	--timeout duration      Timeout of validate, gather and session requests
//	--chat-timeout duration Timeout of chat requests
//	--transcript string     Write the last chat transcript to this file on exit
//	--resume-transcript string
//	                        Show a saved conversation when chatting about its repository
//	--log-level string      debug, info, warn or error
//	--log-dir string        Directory of the rotated log files
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/KyahWill/osci"
	"github.com/KyahWill/osci/backend"
	bt "github.com/KyahWill/osci/bubbletea"
	osjson "github.com/KyahWill/osci/json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "osci: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "osci [repository-url]",
		Short:         "Chat with an agent about a GitHub repository",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("home dir: %w", err)
			}
			cfg, err := loadConfig(cmd.Flags(), home)
			if err != nil {
				return err
			}
			var url string
			if len(args) > 0 {
				url = args[0]
			}
			return runTUI(cmd.Context(), cfg, url)
		},
	}
	addFlags(cmd.Flags())
	return cmd
}

func runTUI(ctx context.Context, cfg Config, url string) error {
	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info().
		Str("backend_url", cfg.BackendURL).
		Str("user_id", cfg.UserID).
		Msg("starting")

	client := backend.New(
		backend.WithBaseURL(cfg.BackendURL),
		backend.WithLogger(logger),
		backend.WithTimeout(cfg.Timeout),
		backend.WithChatTimeout(cfg.ChatTimeout),
	)
	opts := []bt.Option{
		bt.WithUserID(cfg.UserID),
		bt.WithLogger(logger),
		bt.WithContext(ctx),
		bt.WithRepositoryURL(url),
	}
	if cfg.Resume != "" {
		prev, err := osjson.Load(cfg.Resume)
		if err != nil {
			return fmt.Errorf("resume transcript: %w", err)
		}
		logger.Info().
			Str("repository", prev.Repository).
			Int("messages", len(prev.Messages)).
			Msg("transcript resumed")
		opts = append(opts, bt.WithHistory(prev))
	}
	m := bt.New(
		bt.Services{Repositories: client, Sessions: client, Chat: client},
		osci.DefaultTheme(),
		opts...,
	)

	final, err := bt.Run(ctx, m)
	if err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	logger.Info().Msg("exiting")

	if cfg.Transcript == "" {
		return nil
	}
	t, ok := final.Transcript()
	if !ok {
		return nil
	}
	if err := osjson.Save(cfg.Transcript, t); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Transcript saved to %s\n", cfg.Transcript)
	return nil
}
