package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// EmailJSEndpoint is the EmailJS REST send endpoint
const EmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSSender sends through the EmailJS REST API
type EmailJSSender struct {
	http     *resty.Client
	endpoint string
}

type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJSSender creates a sender for endpoint, or the public EmailJS endpoint when empty
func NewEmailJSSender(endpoint string) *EmailJSSender {
	if endpoint == "" {
		endpoint = EmailJSEndpoint
	}
	return &EmailJSSender{
		http:     resty.New(),
		endpoint: endpoint,
	}
}

func (s *EmailJSSender) Send(ctx context.Context, req Request) error {
	if req.ServiceID == "" || req.TemplateID == "" || req.AccountID == "" {
		return fmt.Errorf("emailjs: service, template and account ids are required")
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(emailJSPayload{
			ServiceID:      req.ServiceID,
			TemplateID:     req.TemplateID,
			UserID:         req.AccountID,
			TemplateParams: req.Params,
		}).
		Post(s.endpoint)
	if err != nil {
		return fmt.Errorf("emailjs: request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("emailjs: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}
