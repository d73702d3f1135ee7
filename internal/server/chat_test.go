package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/neonyanbbcode/MarketAnly/internal/session"
	"github.com/neonyanbbcode/MarketAnly/models"
)

func postChat(t *testing.T, h *ChatHandler, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.chat(e.NewContext(req, rec))
}

func TestChatBeforeAnyAnalysis(t *testing.T) {
	fp := &fakeProvider{chatReply: "markets are closed today"}
	store := session.NewStore()
	h := &ChatHandler{Provider: fp, Sessions: store}

	rec, err := postChat(t, h, `{"message":"anything moving?"}`)
	if err != nil {
		t.Fatalf("chat must never fail toward the caller: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Reply != "markets are closed today" || resp.Fallback {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(fp.gotHistory) != 0 {
		t.Fatalf("lazily created session must carry no seeded history")
	}
	cur, ok := store.Current()
	if !ok || cur.ID() != resp.SessionID {
		t.Fatalf("chat must establish the bare session")
	}
	if len(cur.Transcript()) != 2 {
		t.Fatalf("transcript must advance by one exchange")
	}
}

func TestChatUsesSeededHistory(t *testing.T) {
	fp := &fakeProvider{chatReply: "volatility is elevated"}
	store := session.NewStore()
	store.Begin([]models.HistoryTurn{
		{Role: models.RoleUser, Text: "instruction"},
		{Role: models.RoleModel, Text: "raw response"},
	})
	h := &ChatHandler{Provider: fp, Sessions: store}

	if _, err := postChat(t, h, `{"message":"and vix?"}`); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(fp.gotHistory) != 2 || fp.gotHistory[1].Text != "raw response" {
		t.Fatalf("chat must ground on the seeded history: %+v", fp.gotHistory)
	}
	if fp.gotQuestion != "and vix?" {
		t.Fatalf("question not forwarded: %q", fp.gotQuestion)
	}

	cur, _ := store.Current()
	if len(cur.History()) != 4 {
		t.Fatalf("exchange must extend the grounding history")
	}
}

func TestChatFallbackOnProviderError(t *testing.T) {
	fp := &fakeProvider{chatErr: errors.New("upstream 500")}
	store := session.NewStore()
	h := &ChatHandler{Provider: fp, Sessions: store}

	rec, err := postChat(t, h, `{"message":"still there?"}`)
	if err != nil {
		t.Fatalf("provider errors must not surface: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Fallback || resp.Reply != chatFallbackMessage {
		t.Fatalf("expected the fixed fallback message, got %+v", resp)
	}

	cur, _ := store.Current()
	tr := cur.Transcript()
	if len(tr) != 2 || tr[1].Text != chatFallbackMessage {
		t.Fatalf("transcript must advance with the fallback entry: %+v", tr)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	h := &ChatHandler{Provider: &fakeProvider{}, Sessions: session.NewStore()}
	_, err := postChat(t, h, `{"message":"  "}`)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %#v", err)
	}
}
