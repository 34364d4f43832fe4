package email

import (
	"context"
	"log"
	"sort"
	"strings"
)

// Request is one templated message to one recipient
type Request struct {
	ServiceID  string
	TemplateID string
	AccountID  string
	Params     map[string]string
}

// Sender delivers a templated message through some provider
type Sender interface {
	Send(ctx context.Context, req Request) error
}

// Settings identifies the provider account and template used for candidate emails
type Settings struct {
	ServiceID   string
	TemplateID  string
	AccountID   string
	SenderName  string
	CompanyName string
}

// Request builds a request for these settings with the given parameters
func (s Settings) Request(params map[string]string) Request {
	return Request{
		ServiceID:  s.ServiceID,
		TemplateID: s.TemplateID,
		AccountID:  s.AccountID,
		Params:     params,
	}
}

// LogSender logs each request and reports success
type LogSender struct{}

func (LogSender) Send(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Printf("[Email] template=%s to=%s params=%s", req.TemplateID, req.Params["to_email"], formatParams(req.Params))
	return nil
}

func formatParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return strings.Join(pairs, " ")
}
