package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taikai/internal/announce"
	"taikai/internal/config"
	"taikai/internal/spectator"
	"taikai/internal/tourney"
	"taikai/internal/ui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:          "taikai",
		Short:        "Guided runner for the winter camp shogi team tournament",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession()
		},
	}

	root.AddCommand(
		newRosterCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runSession() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("taikai needs an interactive terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := newLogger(cfg.LogPath)
	store := tourney.NewStore(tourney.DefaultTeams(), tourney.DefaultRoundConfigs())
	logger.Info("session created", "session_id", store.SessionID(), "rounds", store.NumRounds())

	if cfg.SpectatorEnabled {
		go func() {
			if err := spectator.Run(ctx, cfg, logger, store); err != nil {
				logger.Error("spectator server failed", "err", err)
			}
		}()
	}

	var announcer announce.Announcer = announce.Noop{}
	if cfg.GeminiAPIKey != "" {
		generator, err := announce.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.AnnouncerModel, logger)
		if err != nil {
			logger.Warn("announcer disabled", "err", err)
		} else {
			announcer = generator
		}
	}

	var notifier *announce.DiscordNotifier
	if cfg.DiscordToken != "" && cfg.DiscordChannel != "" {
		n, err := announce.NewDiscordNotifier(cfg.DiscordToken, cfg.DiscordChannel, logger)
		if err != nil {
			logger.Warn("discord notifier disabled", "err", err)
		} else {
			notifier = n
		}
	}

	return ui.Run(cfg, store, announcer, notifier, logger)
}

// newLogger writes JSON lines to the configured file. Stdout belongs to the
// full-screen UI, so logging never goes there.
func newLogger(path string) *slog.Logger {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Print the teams and the round schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams := tourney.DefaultTeams()
			printRoster(teams)
			printSchedule(tourney.DefaultRoundConfigs(), teams)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taikai version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("taikai", version)
		},
	}
}
