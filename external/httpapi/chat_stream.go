package httpapi

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

type streamFrame struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

// StreamChatMessage upgrades to a websocket, reads a single question and
// streams the assistant reply as it is revealed character by character.
// The final frame carries done=true and the committed message id. A
// question rejected by the session (blank, or another send already in
// flight) yields a single error frame.
func (h *Handler) StreamChatMessage(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var req chatSendRequest
	if err := conn.ReadJSON(&req); err != nil {
		return
	}

	// Reveal callbacks arrive from the send goroutine; gorilla websocket
	// connections allow only one concurrent writer.
	var writeMu sync.Mutex
	writeFrame := func(frame streamFrame) {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.WriteJSON(frame)
	}

	msg, err := h.manager.ChatSend(r.Context(), mux.Vars(r)["id"], req.Message, func(prefix string) {
		writeFrame(streamFrame{Content: prefix})
	})
	if err != nil {
		writeMu.Lock()
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		writeMu.Unlock()
		return
	}
	if msg == nil {
		writeMu.Lock()
		_ = conn.WriteJSON(map[string]string{"error": "message was empty or another question is still being answered"})
		writeMu.Unlock()
		return
	}

	writeFrame(streamFrame{ID: msg.ID, Content: msg.Content, Done: true})
}
