package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/slack-go/slack"

	"github.com/example/serier/internal/bot"
)

type botStub struct {
	slashErr       error
	interactionErr error
	messageErr     error

	slashCmds    []slack.SlashCommand
	interactions []slack.InteractionCallback
	messages     []string
}

func (b *botStub) HandleSlash(_ context.Context, cmd slack.SlashCommand) error {
	b.slashCmds = append(b.slashCmds, cmd)
	return b.slashErr
}

func (b *botStub) HandleInteraction(_ context.Context, cb slack.InteractionCallback) error {
	b.interactions = append(b.interactions, cb)
	return b.interactionErr
}

func (b *botStub) HandleMessage(_ context.Context, _, _, _, text string) error {
	b.messages = append(b.messages, text)
	return b.messageErr
}

func newTestRouter(stub *botStub) http.Handler {
	handler := NewSlackHandler(stub, discardLogger())
	return NewRouter(RouterConfig{Slack: handler})
}

func TestSlashEndpoint(t *testing.T) {
	t.Parallel()

	stub := &botStub{}
	router := newTestRouter(stub)

	form := url.Values{}
	form.Set("command", "/serier")
	form.Set("text", "create")
	form.Set("team_id", "T1")
	form.Set("channel_id", "C1")
	form.Set("user_id", "U1")

	req := httptest.NewRequest(http.MethodPost, "/slash", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(stub.slashCmds) != 1 {
		t.Fatalf("expected 1 slash command, got %d", len(stub.slashCmds))
	}
	cmd := stub.slashCmds[0]
	if cmd.Text != "create" || cmd.TeamID != "T1" || cmd.ChannelID != "C1" || cmd.UserID != "U1" {
		t.Fatalf("parsed command = %+v", cmd)
	}
}

func TestSlashEndpointReportsFailure(t *testing.T) {
	t.Parallel()

	stub := &botStub{slashErr: fmt.Errorf("boom")}
	router := newTestRouter(stub)

	form := url.Values{}
	form.Set("command", "/serier")
	form.Set("text", "create")

	req := httptest.NewRequest(http.MethodPost, "/slash", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Slack deliveries are always acknowledged; the failure surfaces as an
	// ephemeral message body.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "something went wrong") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func postAction(t *testing.T, router http.Handler, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	form := url.Values{}
	form.Set("payload", string(raw))

	req := httptest.NewRequest(http.MethodPost, "/actions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestActionsEndpoint(t *testing.T) {
	t.Parallel()

	stub := &botStub{}
	router := newTestRouter(stub)

	cb := slack.InteractionCallback{Type: slack.InteractionTypeDialogSubmission, CallbackID: "update_series_title"}
	rec := postAction(t, router, cb)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(stub.interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(stub.interactions))
	}
	if stub.interactions[0].CallbackID != "update_series_title" {
		t.Fatalf("callback id = %q", stub.interactions[0].CallbackID)
	}
}

func TestActionsEndpointUnhandled(t *testing.T) {
	t.Parallel()

	stub := &botStub{interactionErr: fmt.Errorf("%w: nope", bot.ErrUnhandled)}
	router := newTestRouter(stub)

	rec := postAction(t, router, slack.InteractionCallback{Type: slack.InteractionTypeBlockActions})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Slack-No-Retry") != "1" {
		t.Fatal("expected X-Slack-No-Retry header")
	}
	if !strings.Contains(rec.Body.String(), "App not equipped") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestActionsEndpointRejectsMissingPayload(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&botStub{})

	req := httptest.NewRequest(http.MethodPost, "/actions", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestEventsURLVerification(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&botStub{})

	body := `{"type":"url_verification","challenge":"chal-123","token":"tok"}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "chal-123") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestEventsRoutesDirectMessages(t *testing.T) {
	t.Parallel()

	stub := &botStub{}
	router := newTestRouter(stub)

	body := `{
		"type": "event_callback",
		"team_id": "T1",
		"event": {
			"type": "message",
			"channel_type": "im",
			"client_msg_id": "11aa",
			"channel": "D1",
			"user": "U1",
			"text": "hello"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(stub.messages) != 1 || stub.messages[0] != "hello" {
		t.Fatalf("messages = %v", stub.messages)
	}
}

func TestEventsIgnoresBotEcho(t *testing.T) {
	t.Parallel()

	stub := &botStub{}
	router := newTestRouter(stub)

	// No client_msg_id and a bot_id: the bot's own message coming back.
	body := `{
		"type": "event_callback",
		"team_id": "T1",
		"event": {
			"type": "message",
			"channel_type": "im",
			"bot_id": "B1",
			"channel": "D1",
			"text": "Hi! Welcome"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(stub.messages) != 0 {
		t.Fatalf("bot echo must not be routed, got %v", stub.messages)
	}
}

func TestRouterMethodFiltering(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&botStub{})

	req := httptest.NewRequest(http.MethodGet, "/slash", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
