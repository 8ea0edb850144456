package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CosmoTheDev/prmedia/internal/compose"
	"github.com/CosmoTheDev/prmedia/internal/config"
	"github.com/CosmoTheDev/prmedia/models"
)

func testDoc() compose.Document {
	return compose.Compose(compose.Input{PR: models.PullRequest{
		Title: "Fix loop", URL: "https://github.com/acme/app/pull/7",
		Author: "octocat", SourceBranch: "dev", TargetBranch: "main",
	}})
}

func newSlackServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request, *[]byte) {
	t.Helper()
	var gotReq http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = *r
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotReq, &gotBody
}

func TestSlackSendSuccess(t *testing.T) {
	srv, gotReq, gotBody := newSlackServer(t, http.StatusOK, `{"ok":true,"channel":"C123","ts":"1700000000.000100"}`)
	ch := NewSlack(config.SlackConfig{BotToken: "xoxb-test", ChannelID: "C123", APIURL: srv.URL + "/"}, srv.Client())

	if err := ch.Send(context.Background(), testDoc()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotReq.Method != http.MethodPost || gotReq.URL.Path != "/chat.postMessage" {
		t.Fatalf("unexpected request %s %s", gotReq.Method, gotReq.URL.Path)
	}
	if got := gotReq.Header.Get("Authorization"); got != "Bearer xoxb-test" {
		t.Fatalf("expected bearer auth, got %q", got)
	}
	if got := gotReq.Header.Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("expected JSON content type, got %q", got)
	}

	var payload struct {
		Channel string            `json:"channel"`
		Text    string            `json:"text"`
		Blocks  []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(*gotBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Channel != "C123" || payload.Text != "PR: Fix loop" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if len(payload.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(payload.Blocks))
	}
}

func TestSlackSendRejected(t *testing.T) {
	srv, _, _ := newSlackServer(t, http.StatusOK, `{"ok":false,"error":"channel_not_found"}`)
	ch := NewSlack(config.SlackConfig{BotToken: "xoxb-test", ChannelID: "C404", APIURL: srv.URL + "/"}, srv.Client())

	err := ch.Send(context.Background(), testDoc())
	var derr *DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
	if derr.Reason != "channel_not_found" {
		t.Fatalf("expected service reason, got %q", derr.Reason)
	}
	if err.Error() != "slack post failed: channel_not_found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestSlackSendHTTPError(t *testing.T) {
	srv, _, _ := newSlackServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	ch := NewSlack(config.SlackConfig{BotToken: "x", ChannelID: "C1", APIURL: srv.URL + "/"}, srv.Client())

	err := ch.Send(context.Background(), testDoc())
	var derr *DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
	if !strings.Contains(derr.Reason, "HTTP 502") {
		t.Fatalf("expected HTTP status in reason, got %q", derr.Reason)
	}
}

func TestSlackSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	apiURL := srv.URL + "/"
	srv.Close()

	ch := NewSlack(config.SlackConfig{BotToken: "x", ChannelID: "C1", APIURL: apiURL}, nil)
	var derr *DeliveryError
	if err := ch.Send(context.Background(), testDoc()); !errors.As(err, &derr) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
}

func TestSlackSendSingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"ok":false,"error":"ratelimited"}`))
	}))
	defer srv.Close()

	ch := NewSlack(config.SlackConfig{BotToken: "x", ChannelID: "C1", APIURL: srv.URL + "/"}, srv.Client())
	_ = ch.Send(context.Background(), testDoc())
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestSlackIsConfigured(t *testing.T) {
	if NewSlack(config.SlackConfig{BotToken: "x"}, nil).IsConfigured() {
		t.Fatal("expected channel without ID to be unconfigured")
	}
	if !NewSlack(config.SlackConfig{BotToken: "x", ChannelID: "C1"}, nil).IsConfigured() {
		t.Fatal("expected channel to be configured")
	}
}

func TestSlackAuthTest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth.test" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"team":"Acme","user":"prmedia-bot","team_id":"T1","user_id":"U1"}`))
	}))
	defer srv.Close()

	ch := NewSlack(config.SlackConfig{BotToken: "xoxb-test", ChannelID: "C1", APIURL: srv.URL + "/"}, srv.Client())
	team, user, err := ch.AuthTest(context.Background())
	if err != nil {
		t.Fatalf("AuthTest: %v", err)
	}
	if team != "Acme" || user != "prmedia-bot" {
		t.Fatalf("unexpected identity %q/%q", team, user)
	}
}

func TestSlackAuthTestInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
	}))
	defer srv.Close()

	ch := NewSlack(config.SlackConfig{BotToken: "bad", ChannelID: "C1", APIURL: srv.URL + "/"}, srv.Client())
	if _, _, err := ch.AuthTest(context.Background()); err == nil || !strings.Contains(err.Error(), "invalid_auth") {
		t.Fatalf("expected invalid_auth error, got %v", err)
	}
}
