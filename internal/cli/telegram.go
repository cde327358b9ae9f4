package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"quiz-bot/internal/bot"
	"quiz-bot/internal/config"
)

// NewTelegramCmd builds the subcommand that runs the Telegram adapter.
func NewTelegramCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Start the Telegram quiz bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTelegram(cmd.Context(), *configPath)
		},
	}
}

func runTelegram(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token not configured")
	}

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("create telegram api: %w", err)
	}
	notifier := newNotifier(cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.NewTelegram(api, engine).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		// Report to the admin channel, then let the failure terminate the process.
		notifier.Notify("Telegram Bot", err)
		return err
	}
	return nil
}
