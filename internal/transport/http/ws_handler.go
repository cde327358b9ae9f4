package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-bot/internal/app"
)

// WSHandler exposes the conversation engine over a websocket, mainly for
// local play-testing and ops checks. It speaks the same adapter contract as
// the chat bots; sessions are keyed ws_<userId>.
type WSHandler struct {
	engine   *app.Engine
	upgrader websocket.Upgrader
}

func NewWSHandler(engine *app.Engine) *WSHandler {
	return &WSHandler{
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type questionPayload struct {
	Question string `json:"question"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and serves one conversation per connection.
// Messages are processed strictly in order, like the long-poll adapters.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}
	userKey := "ws_" + userID

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "newQuestion":
			question, err := h.engine.NewQuestion(ctx, userKey)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.write(conn, "question", questionPayload{Question: question})
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.write(conn, "error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			result, err := h.engine.SubmitAnswer(ctx, userKey, payload.Text)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.write(conn, "result", result)
		case "giveUp":
			result, err := h.engine.GiveUp(ctx, userKey)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.write(conn, "reveal", result)
		default:
			h.write(conn, "error", errorPayload{Message: "unsupported message type"})
		}
	}
}

func (h *WSHandler) write(conn *websocket.Conn, typ string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (h *WSHandler) writeError(conn *websocket.Conn, err error) {
	log.Printf("ws handler error: %v", err)
	h.write(conn, "error", errorPayload{Message: err.Error()})
}
