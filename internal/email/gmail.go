package email

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/mail"
	"os"
	"strings"
	"text/template"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// DefaultTemplate is used when a request names a template that is not registered
const DefaultTemplate = "interview_invitation"

const interviewInvitation = `To: {{address .candidate_name .to_email}}
Subject: {{if .company_name}}{{encode "Interview invitation: " .job_title " at " .company_name}}{{else}}{{encode "Interview invitation: " .job_title}}{{end}}
MIME-Version: 1.0
Content-Type: text/plain; charset="UTF-8"

Dear {{.candidate_name}},

{{.message}}

Date: {{.interview_date}}
Time: {{.interview_time}}
Location: {{.interview_location}}

Kind regards,
{{.from_name}}
`

// GmailSender renders messages locally and sends them through the Gmail API.
// Request.AccountID names the Gmail user and defaults to "me".
type GmailSender struct {
	service   *gmail.Service
	templates *template.Template
}

// GmailAuth locates the OAuth client credentials and the cached token
type GmailAuth struct {
	CredentialsPath string
	TokenPath       string
	// Prompt reads the authorisation code on first run; defaults to stdin
	Prompt io.Reader
}

// NewGmailSender authorises against Gmail and returns a sender
func NewGmailSender(ctx context.Context, auth GmailAuth) (*GmailSender, error) {
	b, err := os.ReadFile(auth.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	client, err := authorisedClient(ctx, config, auth)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}
	return NewGmailSenderWithService(srv), nil
}

// NewGmailSenderWithService wraps an existing Gmail service
func NewGmailSenderWithService(srv *gmail.Service) *GmailSender {
	return &GmailSender{
		service:   srv,
		templates: template.Must(template.New(DefaultTemplate).Option("missingkey=zero").Funcs(headerFuncs).Parse(interviewInvitation)),
	}
}

// headerFuncs are available to every template for building header values
var headerFuncs = template.FuncMap{
	"address": func(name, addr string) string {
		return (&mail.Address{Name: name, Address: addr}).String()
	},
	"encode": func(parts ...string) string {
		return mime.QEncoding.Encode("utf-8", strings.Join(parts, ""))
	},
}

// lineBreaks turns a value into a single line so it cannot open a new header
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// AddTemplate registers a named message template. The text must start with headers.
func (s *GmailSender) AddTemplate(name, text string) error {
	if _, err := s.templates.New(name).Parse(text); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return nil
}

func (s *GmailSender) Send(ctx context.Context, req Request) error {
	raw, err := s.render(req)
	if err != nil {
		return err
	}

	user := req.AccountID
	if user == "" {
		user = "me"
	}

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	if _, err := s.service.Users.Messages.Send(user, msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail: failed to send to %s: %w", req.Params["to_email"], err)
	}
	return nil
}

func (s *GmailSender) render(req Request) ([]byte, error) {
	tmpl := s.templates.Lookup(req.TemplateID)
	if tmpl == nil {
		tmpl = s.templates.Lookup(DefaultTemplate)
	}

	// Only the message body may span lines
	params := make(map[string]string, len(req.Params))
	for k, v := range req.Params {
		if k != "message" {
			v = lineBreaks.Replace(v)
		}
		params[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return nil, fmt.Errorf("gmail: failed to render %s: %w", tmpl.Name(), err)
	}
	return crlf(buf.Bytes()), nil
}

// crlf normalises line endings for RFC 2822
func crlf(b []byte) []byte {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

// authorisedClient loads the cached token or runs the console flow and caches the result
func authorisedClient(ctx context.Context, config *oauth2.Config, auth GmailAuth) (*http.Client, error) {
	tokFile := auth.TokenPath
	if tokFile == "" {
		tokFile = "token.json"
	}

	tok, err := tokenFromFile(tokFile)
	if err != nil {
		prompt := auth.Prompt
		if prompt == nil {
			prompt = os.Stdin
		}
		tok, err = tokenFromConsole(ctx, config, prompt)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokFile, tok); err != nil {
			log.Printf("[Email] Unable to cache oauth token: %v", err)
		}
	}
	return config.Client(ctx, tok), nil
}

func tokenFromConsole(ctx context.Context, config *oauth2.Config, in io.Reader) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Fscan(bufio.NewReader(in), &authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	log.Printf("[Email] Saving credential file to: %s", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
