package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func invitationParams() map[string]string {
	return map[string]string{
		"to_email":           "ada@example.com",
		"candidate_name":     "Ada",
		"candidate_email":    "ada@example.com",
		"job_title":          "Data Analyst",
		"company_name":       "Acme",
		"from_name":          "Hiring Team",
		"interview_date":     "To be scheduled",
		"interview_time":     "To be confirmed",
		"interview_location": "To be shared",
		"message":            "We would like to invite you to an interview.",
	}
}

func TestEmailJSSenderPayload(t *testing.T) {
	var payload emailJSPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		io.WriteString(w, "OK")
	}))
	defer server.Close()

	s := NewEmailJSSender(server.URL)
	settings := Settings{ServiceID: "svc", TemplateID: "tpl", AccountID: "user"}
	if err := s.Send(context.Background(), settings.Request(invitationParams())); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if payload.ServiceID != "svc" || payload.TemplateID != "tpl" || payload.UserID != "user" {
		t.Errorf("payload ids = %+v", payload)
	}
	if payload.TemplateParams["candidate_name"] != "Ada" {
		t.Errorf("candidate_name = %q, want Ada", payload.TemplateParams["candidate_name"])
	}
}

func TestEmailJSSenderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "The user_id parameter is required")
	}))
	defer server.Close()

	err := NewEmailJSSender(server.URL).Send(context.Background(), Request{ServiceID: "s", TemplateID: "t", AccountID: "u"})
	if err == nil {
		t.Fatal("Expected error for rejected send")
	}
	if !strings.Contains(err.Error(), "user_id parameter is required") {
		t.Errorf("error = %v, want server text", err)
	}
}

func TestEmailJSSenderRequiresIDs(t *testing.T) {
	if err := NewEmailJSSender("http://127.0.0.1:1").Send(context.Background(), Request{}); err == nil {
		t.Error("Expected error for missing identifiers")
	}
}

func TestGmailSenderSend(t *testing.T) {
	var gotPath, raw string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var msg gmail.Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("Failed to decode message: %v", err)
		}
		raw = msg.Raw
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"m1"}`)
	}))
	defer server.Close()

	srv, err := gmail.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	s := NewGmailSenderWithService(srv)
	if err := s.Send(context.Background(), Request{TemplateID: "unknown", Params: invitationParams()}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if !strings.HasSuffix(gotPath, "/users/me/messages/send") {
		t.Errorf("path = %s, want .../users/me/messages/send", gotPath)
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("Failed to decode raw message: %v", err)
	}
	body := string(decoded)
	for _, want := range []string{
		"To: \"Ada\" <ada@example.com>\r\n",
		"Subject: Interview invitation: Data Analyst at Acme\r\n",
		"Dear Ada,",
		"Location: To be shared",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q:\n%s", want, body)
		}
	}
}

func TestGmailSenderCustomTemplate(t *testing.T) {
	s := NewGmailSenderWithService(nil)
	if err := s.AddTemplate("short", "To: {{.to_email}}\nSubject: Hi\n\nHello {{.candidate_name}}\n"); err != nil {
		t.Fatalf("AddTemplate() error = %v", err)
	}

	raw, err := s.render(Request{TemplateID: "short", Params: invitationParams()})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if got := string(raw); got != "To: ada@example.com\r\nSubject: Hi\r\n\r\nHello Ada\r\n" {
		t.Errorf("render() = %q", got)
	}
}

func TestGmailSenderHeaderValuesStayOnOneLine(t *testing.T) {
	s := NewGmailSenderWithService(nil)
	if err := s.AddTemplate("plain", "To: {{.to_email}}\nSubject: {{.job_title}}\n\n{{.message}}\n"); err != nil {
		t.Fatalf("AddTemplate() error = %v", err)
	}

	params := invitationParams()
	params["to_email"] = "ada@example.com\r\nBcc: victim@evil.test"
	params["candidate_name"] = "Ada\nCc: other@evil.test"
	params["job_title"] = "Analyst\nX-Injected: yes"
	params["message"] = "Line one\nLine two"

	for _, id := range []string{DefaultTemplate, "plain"} {
		raw, err := s.render(Request{TemplateID: id, Params: params})
		if err != nil {
			t.Fatalf("render(%s) error = %v", id, err)
		}
		headers, body, ok := strings.Cut(string(raw), "\r\n\r\n")
		if !ok {
			t.Fatalf("render(%s) has no header break:\n%s", id, raw)
		}
		for _, line := range strings.Split(headers, "\r\n") {
			for _, bad := range []string{"Bcc:", "Cc:", "X-Injected:"} {
				if strings.HasPrefix(line, bad) {
					t.Errorf("render(%s) header line %q", id, line)
				}
			}
		}
		if !strings.Contains(body, "Line one\r\nLine two") {
			t.Errorf("render(%s) body lost its line breaks:\n%s", id, body)
		}
	}
}

func TestGmailSenderEncodesNonASCIISubject(t *testing.T) {
	s := NewGmailSenderWithService(nil)
	params := invitationParams()
	params["job_title"] = "Développeur"
	params["candidate_name"] = "Zoë"

	raw, err := s.render(Request{Params: params})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	headers, _, _ := strings.Cut(string(raw), "\r\n\r\n")
	if !strings.Contains(headers, "Subject: =?utf-8?q?") {
		t.Errorf("subject not encoded:\n%s", headers)
	}
	if !strings.Contains(headers, "To: =?utf-8?q?Zo=C3=AB?= <ada@example.com>") {
		t.Errorf("recipient name not encoded:\n%s", headers)
	}
	for _, r := range headers {
		if r > 127 {
			t.Errorf("headers contain non-ASCII %q:\n%s", r, headers)
			break
		}
	}
}

func TestTokenCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if _, err := tokenFromFile(path); err == nil {
		t.Error("Expected error for missing token file")
	}

	if err := saveToken(path, &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}); err != nil {
		t.Fatalf("saveToken() error = %v", err)
	}
	tok, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("tokenFromFile() error = %v", err)
	}
	if tok.AccessToken != "abc" {
		t.Errorf("AccessToken = %q, want abc", tok.AccessToken)
	}
}

func TestLogSender(t *testing.T) {
	if err := (LogSender{}).Send(context.Background(), Request{Params: invitationParams()}); err != nil {
		t.Errorf("Send() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (LogSender{}).Send(ctx, Request{}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestFormatParamsSorted(t *testing.T) {
	got := formatParams(map[string]string{"b": "2", "a": "1"})
	if got != "a=1 b=2" {
		t.Errorf("formatParams() = %q, want %q", got, "a=1 b=2")
	}
}
