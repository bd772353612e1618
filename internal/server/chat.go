package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/session"
)

const (
	chatWriteWait    = 10 * time.Second
	chatMaxFrameSize = 64 * 1024
)

// chatRequest is a client frame on the chat socket.
type chatRequest struct {
	Type     string `json:"type"` // ask, history, clear
	Question string `json:"question,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// chatResponse is a server frame on the chat socket.
type chatResponse struct {
	Type  string              `json:"type"` // answer, history, cleared, error
	Turn  *session.ChatTurn   `json:"turn,omitempty"`
	Turns []session.ChatTurn  `json:"turns,omitempty"`
	Match *models.MatchResult `json:"result,omitempty"`
	Error string              `json:"error,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	allowAll := false
	allowed := make(map[string]bool, len(s.config.CORSOrigins))
	for _, o := range s.config.CORSOrigins {
		allowAll = allowAll || o == "*"
		allowed[o] = true
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowAll || allowed[origin]
		},
	}
}

// handleChat runs one chat session per connection. History lives only as long as the socket.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("chat upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(chatMaxFrameSize)

	hist := session.NewHistory(0)
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("chat connection closed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var resp chatResponse
		if req, err := parseChatRequest(data); err != nil {
			resp = chatResponse{Type: "error", Error: err.Error()}
		} else {
			resp = s.chatReply(r, hist, req)
		}
		payload, err := sonic.Marshal(resp)
		if err != nil {
			s.logger.Error("chat encode failed", zap.Error(err))
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

var errEmptyFrame = errors.New("frame needs a type or a question")

// parseChatRequest decodes a frame. Text that is not a JSON object is a question;
// an object with neither type nor question is rejected.
func parseChatRequest(data []byte) (chatRequest, error) {
	var req chatRequest
	if err := sonic.Unmarshal(data, &req); err != nil {
		return chatRequest{Type: "ask", Question: string(data)}, nil
	}
	if req.Type == "" {
		if req.Question == "" {
			return req, errEmptyFrame
		}
		req.Type = "ask"
	}
	return req, nil
}

func (s *Server) chatReply(r *http.Request, hist *session.History, req chatRequest) chatResponse {
	switch req.Type {
	case "history":
		limit := req.Limit
		if limit <= 0 {
			limit = s.historySize
		}
		return chatResponse{Type: "history", Turns: hist.Recent(limit)}
	case "clear":
		hist.Clear()
		return chatResponse{Type: "cleared"}
	case "ask":
		ask := models.AskRequest{Question: req.Question}
		if err := ask.Validate(s.config.MaxQuestionLength); err != nil {
			return chatResponse{Type: "error", Error: err.Error()}
		}
		q := ask.Question
		res, err := s.answerer.Resolve(r.Context(), q)
		if err != nil {
			return chatResponse{Type: "error", Error: err.Error()}
		}
		turn := hist.Add(q, res)
		return chatResponse{Type: "answer", Turn: &turn, Match: &res}
	default:
		return chatResponse{Type: "error", Error: "unknown message type " + req.Type}
	}
}
