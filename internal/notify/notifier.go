package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier reports unhandled failures to an administrative side channel.
// Implementations are best-effort: a failed notification must never mask the
// original error, which still propagates at the process boundary.
type Notifier interface {
	Notify(component string, err error)
}

// sender is the slice of tgbotapi.BotAPI the notifier needs; narrowed for tests.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts failure reports to an admin chat.
type Telegram struct {
	api    sender
	chatID int64
}

func NewTelegram(api *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{api: api, chatID: chatID}
}

func (n *Telegram) Notify(component string, err error) {
	text := fmt.Sprintf("🚨 Ошибка в боте %s:\n%v", component, err)
	if _, sendErr := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); sendErr != nil {
		log.Printf("admin notification for %s failed: %v (original error: %v)", component, sendErr, err)
	}
}

// Nop is used when no admin chat is configured; failures only hit the log.
type Nop struct{}

func (Nop) Notify(component string, err error) {
	log.Printf("unhandled failure in %s: %v", component, err)
}
