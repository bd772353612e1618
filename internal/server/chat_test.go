package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/hyperjump/cancerqa/internal/models"
)

func dialChat(t *testing.T, env *testEnv, origin string) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(env.srv.Handler())
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/chat"
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, frame string) chatResponse {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return resp
}

func TestChat_AskHistoryClear(t *testing.T) {
	env := newTestEnv(t, true)
	conn := dialChat(t, env, "")

	resp := exchange(t, conn, `{"type":"ask","question":"what are breast cancer symptoms"}`)
	if resp.Type != "answer" || resp.Match == nil || resp.Match.Answer != "A1" {
		t.Fatalf("ask response = %+v", resp)
	}
	if resp.Turn == nil || resp.Turn.ID == "" || resp.Turn.Question != "what are breast cancer symptoms" {
		t.Errorf("turn = %+v", resp.Turn)
	}

	// Plain text frames are questions too.
	resp = exchange(t, conn, "স্তন ক্যান্সারের লক্ষণ কী?")
	if resp.Type != "answer" || resp.Match.Language != models.Bengali {
		t.Fatalf("plain frame response = %+v", resp)
	}

	resp = exchange(t, conn, `{"type":"history"}`)
	if resp.Type != "history" || len(resp.Turns) != 2 || resp.Turns[0].Language != models.Bengali {
		t.Fatalf("history = %+v", resp)
	}

	resp = exchange(t, conn, `{"type":"history","limit":1}`)
	if len(resp.Turns) != 1 {
		t.Errorf("limited history has %d turns", len(resp.Turns))
	}

	if resp = exchange(t, conn, `{"type":"clear"}`); resp.Type != "cleared" {
		t.Errorf("clear response = %+v", resp)
	}
	if resp = exchange(t, conn, `{"type":"history"}`); len(resp.Turns) != 0 {
		t.Errorf("history after clear = %+v", resp.Turns)
	}
}

func TestChat_HistoryIsPerConnection(t *testing.T) {
	env := newTestEnv(t, true)
	first := dialChat(t, env, "")
	exchange(t, first, "cervical cancer prevented")

	second := dialChat(t, env, "")
	if resp := exchange(t, second, `{"type":"history"}`); len(resp.Turns) != 0 {
		t.Errorf("new connection sees %d turns", len(resp.Turns))
	}
}

func TestChat_Errors(t *testing.T) {
	env := newTestEnv(t, false)
	conn := dialChat(t, env, "")

	if resp := exchange(t, conn, `{"type":"ask","question":"hello"}`); resp.Type != "error" || !strings.Contains(resp.Error, "not loaded") {
		t.Errorf("not ready response = %+v", resp)
	}
	if resp := exchange(t, conn, `{"type":"dance"}`); resp.Type != "error" {
		t.Errorf("unknown type response = %+v", resp)
	}
	long := `{"question":"` + strings.Repeat("a", 100) + `"}`
	if resp := exchange(t, conn, long); resp.Type != "error" || !strings.Contains(resp.Error, "exceeds 64 characters") {
		t.Errorf("long question response = %+v", resp)
	}
}

func TestChat_RejectsDisallowedOrigin(t *testing.T) {
	env := newTestEnv(t, true)
	env.srv.config.CORSOrigins = []string{"https://app.example"}
	ts := httptest.NewServer(env.srv.Handler())
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/chat"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Error("expected handshake failure for disallowed origin")
	}
}

func TestParseChatRequest(t *testing.T) {
	tests := []struct {
		in      string
		want    chatRequest
		wantErr bool
	}{
		{`{"type":"history","limit":3}`, chatRequest{Type: "history", Limit: 3}, false},
		{`{"question":"hi"}`, chatRequest{Type: "ask", Question: "hi"}, false},
		{`plain question`, chatRequest{Type: "ask", Question: "plain question"}, false},
		{`স্তন ক্যান্সার`, chatRequest{Type: "ask", Question: "স্তন ক্যান্সার"}, false},
		{`{}`, chatRequest{}, true},
		{`{"limit":3}`, chatRequest{}, true},
	}
	for _, tt := range tests {
		got, err := parseChatRequest([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseChatRequest(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseChatRequest(%s) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestChat_UntypedObjectIsRejected(t *testing.T) {
	env := newTestEnv(t, true)
	conn := dialChat(t, env, "")

	resp := exchange(t, conn, `{"limit":3}`)
	if resp.Type != "error" || !strings.Contains(resp.Error, "type or a question") {
		t.Errorf("untyped frame response = %+v", resp)
	}
	// The connection stays usable and nothing was recorded.
	resp = exchange(t, conn, `{"type":"history"}`)
	if resp.Type != "history" || len(resp.Turns) != 0 {
		t.Errorf("history after rejected frame = %+v", resp)
	}
}

func TestChat_BengaliQuestionWithinCharacterLimit(t *testing.T) {
	env := newTestEnv(t, true)
	conn := dialChat(t, env, "")

	// 64 runes but 192 bytes.
	q := strings.Repeat("ক", 64)
	resp := exchange(t, conn, `{"type":"ask","question":"`+q+`"}`)
	if resp.Type != "answer" || resp.Match == nil || resp.Match.Language != models.Bengali {
		t.Errorf("bengali question at limit = %+v", resp)
	}
	resp = exchange(t, conn, `{"type":"ask","question":"`+q+`ক"}`)
	if resp.Type != "error" {
		t.Errorf("bengali question over limit = %+v", resp)
	}
}
