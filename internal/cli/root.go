package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "quiz-bot",
		Short: "Trivia quiz bot with Telegram, VK and WebSocket adapters",
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port for the websocket server")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewTelegramCmd(&configPath))
	cmd.AddCommand(NewVKCmd(&configPath))
	cmd.AddCommand(NewServeCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewLoadCmd(&configPath))
	return cmd
}
