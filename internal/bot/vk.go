package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/SevereCloud/vksdk/v2/events"
	longpoll "github.com/SevereCloud/vksdk/v2/longpoll-bot"
	"github.com/SevereCloud/vksdk/v2/object"

	"quiz-bot/internal/app"
	"quiz-bot/internal/domain"
	"quiz-bot/internal/notify"
)

const (
	vkMsgGreeting  = "Нажми «Новый вопрос»"
	vkMsgCorrect   = "Правильно! Поздравляю!"
	vkMsgIncorrect = "Неправильно... Попробуешь ещё раз?"
)

// VK serves the quiz over the Bots Long Poll API. Unlike the Telegram adapter
// it keeps no dialog state: every inbound message is routed by its text, and a
// handler failure is reported to the admin channel while the listen loop keeps
// serving the next event. Sessions are keyed vk_<fromID>.
type VK struct {
	vk       *api.VK
	lp       *longpoll.LongPoll
	engine   *app.Engine
	notifier notify.Notifier
}

func NewVK(vk *api.VK, groupID int, engine *app.Engine, notifier notify.Notifier) (*VK, error) {
	lp, err := longpoll.NewLongPoll(vk, groupID)
	if err != nil {
		return nil, fmt.Errorf("init vk long poll: %w", err)
	}
	b := &VK{vk: vk, lp: lp, engine: engine, notifier: notifier}
	lp.MessageNew(b.handleMessage)
	return b, nil
}

// Run blocks on the long-poll loop until ctx is canceled.
func (b *VK) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		b.lp.Shutdown()
	}()
	log.Printf("vk: polling for events")
	return b.lp.Run()
}

func (b *VK) handleMessage(ctx context.Context, obj events.MessageNewObject) {
	userKey := fmt.Sprintf("vk_%d", obj.Message.FromID)
	text := strings.ToLower(strings.TrimSpace(obj.Message.Text))

	if err := b.route(ctx, obj.Message.PeerID, userKey, text); err != nil {
		b.notifier.Notify("VK Bot", err)
		log.Printf("vk: handle message for %s: %v", userKey, err)
	}
}

func (b *VK) route(ctx context.Context, peerID int, userKey, text string) error {
	switch text {
	case "начать":
		return b.send(peerID, vkMsgGreeting, true)
	case "новый вопрос":
		question, err := b.engine.NewQuestion(ctx, userKey)
		if err != nil {
			return err
		}
		return b.send(peerID, question, true)
	case "сдаться":
		result, err := b.engine.GiveUp(ctx, userKey)
		if err != nil {
			return err
		}
		if result.HasReveal {
			if err := b.send(peerID, result.Revealed, false); err != nil {
				return err
			}
		}
		return b.send(peerID, result.NextQuestion, true)
	default:
		result, err := b.engine.SubmitAnswer(ctx, userKey, text)
		if err != nil {
			return err
		}
		switch result.Outcome {
		case domain.OutcomeCorrect:
			return b.send(peerID, vkMsgCorrect, false)
		case domain.OutcomeIncorrect:
			return b.send(peerID, vkMsgIncorrect, false)
		default:
			return b.send(peerID, msgNoQuestion, false)
		}
	}
}

func (b *VK) send(peerID int, message string, keyboard bool) error {
	params := api.Params{
		"peer_id":   peerID,
		"message":   message,
		"random_id": 0,
	}
	if keyboard {
		params["keyboard"] = vkKeyboard()
	}
	if _, err := b.vk.MessagesSend(params); err != nil {
		return fmt.Errorf("vk send to %d: %w", peerID, err)
	}
	return nil
}

func vkKeyboard() *object.MessagesKeyboard {
	return object.NewMessagesKeyboard(false).
		AddRow().
		AddTextButton(btnNewQuestion, "", "primary").
		AddTextButton(btnGiveUp, "", "negative")
}
