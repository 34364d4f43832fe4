package gui

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/fmuoria/recruiter-dashboard/internal/client"
	"github.com/fmuoria/recruiter-dashboard/internal/config"
	"github.com/fmuoria/recruiter-dashboard/internal/email"
	"github.com/fmuoria/recruiter-dashboard/internal/ingestion"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
)

// Services are the backend-facing collaborators the windows share
type Services struct {
	API        *client.Client
	Sender     email.Sender
	Settings   email.Settings
	Downloader *ingestion.Downloader
	publisher  *notify.AMQPPublisher
}

// NewServices builds the client, email sender and notice publisher from cfg.
// A broker that cannot be reached is logged and skipped.
func NewServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	sender, err := newSender(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &Services{
		API:        client.New(cfg.APIBaseURL),
		Sender:     sender,
		Settings:   cfg.EmailSettings(),
		Downloader: ingestion.NewDownloader(cfg.DownloadsDir),
	}

	if cfg.RabbitMQURL != "" {
		pub, err := notify.DialAMQP(cfg.RabbitMQURL, cfg.NoticeExchange)
		if err != nil {
			log.Printf("[GUI] Notice publishing disabled: %v", err)
		} else {
			s.publisher = pub
		}
	}

	return s, nil
}

// Notifier fans notices out to ui, the log and the broker when one is connected
func (s *Services) Notifier(ui notify.Notifier) notify.Notifier {
	targets := notify.Multi{ui, notify.LogNotifier{}}
	if s.publisher != nil {
		targets = append(targets, s.publisher)
	}
	return targets
}

// Close releases the broker connection
func (s *Services) Close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			log.Printf("[GUI] Failed to close notice publisher: %v", err)
		}
	}
}

func newSender(ctx context.Context, cfg *config.Config) (email.Sender, error) {
	switch cfg.EmailProvider {
	case config.ProviderEmailJS:
		return email.NewEmailJSSender(email.EmailJSEndpoint), nil
	case config.ProviderGmail:
		sender, err := email.NewGmailSender(ctx, email.GmailAuth{
			CredentialsPath: cfg.GmailCredentialsPath,
			TokenPath:       cfg.GmailTokenPath,
			Prompt:          os.Stdin,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up Gmail sender: %w", err)
		}
		return sender, nil
	case config.ProviderLog, "":
		return email.LogSender{}, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}
