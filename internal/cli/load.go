package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"quiz-bot/internal/config"
	"quiz-bot/internal/questions"
)

// NewLoadCmd parses a question source file and seeds it into Postgres, so the
// bots can later run against the questions table instead of the file.
func NewLoadCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Parse a question file and seed it into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), *configPath)
		},
	}
}

func runLoad(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if cfg.Questions.Path == "" {
		return fmt.Errorf("questions path not configured")
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pairs, diags, err := questions.ParseFile(cfg.Questions.Path, cfg.Questions.Encoding)
	if err != nil {
		return err
	}

	db := openBunDB(cfg.Postgres.URL)
	defer db.Close()

	for _, p := range pairs {
		_, err := db.ExecContext(ctx,
			`INSERT INTO questions (question, answer) VALUES (?, ?)
			 ON CONFLICT (question) DO UPDATE SET answer = EXCLUDED.answer`,
			p.Question, p.Answer)
		if err != nil {
			return fmt.Errorf("seed question: %w", err)
		}
	}

	log.Printf("seeded %d questions (%d blocks skipped)", len(pairs), len(diags))
	return nil
}
