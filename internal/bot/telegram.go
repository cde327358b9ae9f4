package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"quiz-bot/internal/app"
	"quiz-bot/internal/domain"
)

// Reply-keyboard buttons and canned replies. Wording is presentation only;
// the grading protocol lives in app.Engine.
const (
	btnNewQuestion = "Новый вопрос"
	btnGiveUp      = "Сдаться"
	btnScore       = "Мой счет"

	msgGreeting   = "Я бот для викторин. Нажми «Новый вопрос»."
	msgNoQuestion = "Сначала нажмите «Новый вопрос»."
	msgCorrect    = "Правильно! Поздравляю!\nДля следующего вопроса нажми «Новый вопрос»."
	msgIncorrect  = "Неправильно... Попробуешь ещё раз?"
)

// dialogState is the per-chat conversation phase. It is in-memory only; the
// durable source of truth for "which question" is the session store.
type dialogState int

const (
	stateIdle dialogState = iota
	stateAwaitingAnswer
)

// TelegramAPI is the slice of tgbotapi.BotAPI the adapter uses; narrowed so
// tests can script updates and capture replies.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Telegram long-polls the Bot API and drives the conversation engine.
// Sessions are keyed tg_<userID>.
type Telegram struct {
	api    TelegramAPI
	engine *app.Engine

	mu     sync.Mutex
	states map[int64]dialogState
}

func NewTelegram(api TelegramAPI, engine *app.Engine) *Telegram {
	return &Telegram{
		api:    api,
		engine: engine,
		states: make(map[int64]dialogState),
	}
}

// Run processes updates sequentially until ctx is canceled or handling fails.
// A handler error terminates the bot; the caller reports it to the admin
// channel before exiting.
func (b *Telegram) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	log.Printf("telegram: polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				return err
			}
		}
	}
}

func (b *Telegram) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	userKey := fmt.Sprintf("tg_%d", message.From.ID)

	switch {
	case strings.HasPrefix(message.Text, "/start"):
		return b.greet(chatID)
	case message.Text == btnNewQuestion:
		question, err := b.engine.NewQuestion(ctx, userKey)
		if err != nil {
			return err
		}
		b.setState(chatID, stateAwaitingAnswer)
		return b.reply(chatID, question)
	case b.state(chatID) != stateAwaitingAnswer:
		// Outside a round only /start and «Новый вопрос» mean anything.
		return nil
	case message.Text == btnGiveUp:
		result, err := b.engine.GiveUp(ctx, userKey)
		if err != nil {
			return err
		}
		if result.HasReveal {
			if err := b.reply(chatID, result.Revealed); err != nil {
				return err
			}
		}
		return b.reply(chatID, result.NextQuestion)
	default:
		result, err := b.engine.SubmitAnswer(ctx, userKey, message.Text)
		if err != nil {
			return err
		}
		switch result.Outcome {
		case domain.OutcomeCorrect:
			b.setState(chatID, stateIdle)
			return b.reply(chatID, msgCorrect)
		case domain.OutcomeIncorrect:
			return b.reply(chatID, msgIncorrect)
		default:
			b.setState(chatID, stateIdle)
			return b.reply(chatID, msgNoQuestion)
		}
	}
}

func (b *Telegram) greet(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, msgGreeting)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnNewQuestion),
			tgbotapi.NewKeyboardButton(btnGiveUp),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnScore),
		),
	)
	return b.send(msg)
}

func (b *Telegram) reply(chatID int64, text string) error {
	return b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Telegram) send(msg tgbotapi.MessageConfig) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send to %d: %w", msg.ChatID, err)
	}
	return nil
}

func (b *Telegram) state(chatID int64) dialogState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[chatID]
}

func (b *Telegram) setState(chatID int64, state dialogState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states[chatID] = state
}
