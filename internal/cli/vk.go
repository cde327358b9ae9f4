package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	vkapi "github.com/SevereCloud/vksdk/v2/api"
	"github.com/spf13/cobra"

	"quiz-bot/internal/bot"
	"quiz-bot/internal/config"
)

// NewVKCmd builds the subcommand that runs the VK adapter.
func NewVKCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "vk",
		Short: "Start the VK quiz bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVK(cmd.Context(), *configPath)
		},
	}
}

func runVK(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.VK.Token == "" {
		return fmt.Errorf("vk token not configured")
	}

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	notifier := newNotifier(cfg)

	vk := vkapi.NewVK(cfg.VK.Token)
	b, err := bot.NewVK(vk, cfg.VK.GroupID, engine, notifier)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Per-event failures are reported inside the adapter and the loop keeps
	// going; only a dead long-poll loop ends up here.
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		notifier.Notify("VK Bot", err)
		return err
	}
	return nil
}
