package cli

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quiz-bot/internal/app"
	"quiz-bot/internal/config"
	"quiz-bot/internal/domain"
	"quiz-bot/internal/infra/memory"
	pgsource "quiz-bot/internal/infra/postgres"
	redissession "quiz-bot/internal/infra/redis"
	"quiz-bot/internal/notify"
	"quiz-bot/internal/questions"
)

// buildEngine loads the question bank (Postgres when configured, text file
// otherwise) and binds it to the session store (Redis when configured,
// in-memory otherwise).
func buildEngine(ctx context.Context, cfg config.Config) (*app.Engine, error) {
	pairs, err := loadPairs(ctx, cfg)
	if err != nil {
		return nil, err
	}
	bank := questions.NewBank(pairs)
	log.Printf("loaded %d questions", bank.Len())

	var store app.SessionStore = memory.NewSessionStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = redissession.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, 0))
	} else {
		log.Printf("redis not configured, sessions are in-memory")
	}

	return app.NewEngine(bank, store)
}

func loadPairs(ctx context.Context, cfg config.Config) ([]domain.Pair, error) {
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		return pgsource.NewQuestionSource(pool).LoadPairs(ctx)
	}

	if cfg.Questions.Path == "" {
		return nil, fmt.Errorf("questions path not configured")
	}
	pairs, diags, err := questions.ParseFile(cfg.Questions.Path, cfg.Questions.Encoding)
	if err != nil {
		return nil, err
	}
	for _, d := range diags {
		log.Printf("questions: skipped block (%s)", d.Reason)
	}
	return pairs, nil
}

// newNotifier builds the admin side channel. Without an admin chat configured
// failures only hit the log.
func newNotifier(cfg config.Config) notify.Notifier {
	if cfg.Telegram.Token == "" || cfg.Telegram.AdminChatID == 0 {
		return notify.Nop{}
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Printf("admin notifier disabled: %v", err)
		return notify.Nop{}
	}
	return notify.NewTelegram(api, cfg.Telegram.AdminChatID)
}
