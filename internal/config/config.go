package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fmuoria/recruiter-dashboard/internal/email"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
	"github.com/joho/godotenv"
)

// Email providers
const (
	ProviderEmailJS = "emailjs"
	ProviderGmail   = "gmail"
	ProviderLog     = "log"
)

// Config holds application configuration
type Config struct {
	APIBaseURL           string `json:"api_base_url"`
	EmailProvider        string `json:"email_provider"`
	EmailServiceID       string `json:"email_service_id"`
	EmailTemplateID      string `json:"email_template_id"`
	EmailAccountID       string `json:"email_account_id"`
	SenderName           string `json:"sender_name"`
	CompanyName          string `json:"company_name"`
	GmailCredentialsPath string `json:"gmail_credentials_path"`
	GmailTokenPath       string `json:"gmail_token_path"`
	DownloadsDir         string `json:"downloads_dir"`
	RabbitMQURL          string `json:"rabbitmq_url"`
	NoticeExchange       string `json:"notice_exchange"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     "http://127.0.0.1:5000",
		EmailProvider:  ProviderLog,
		GmailTokenPath: "token.json",
		DownloadsDir:   "downloads",
		NoticeExchange: notify.DefaultExchange,
	}
}

// GetConfigPath returns the path to the configuration file
// On Windows: %APPDATA%/RecruiterDashboard/config.json
// On Unix: ~/.config/RecruiterDashboard/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		configDir = filepath.Join(os.Getenv("APPDATA"), "RecruiterDashboard")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "RecruiterDashboard")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default config path
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv reads a .env file into the process environment if one exists
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}
}

// envFields maps environment variables onto config fields
func (c *Config) envFields() map[string]*string {
	return map[string]*string{
		"API_BASE_URL":           &c.APIBaseURL,
		"EMAIL_PROVIDER":         &c.EmailProvider,
		"EMAILJS_SERVICE_ID":     &c.EmailServiceID,
		"EMAILJS_TEMPLATE_ID":    &c.EmailTemplateID,
		"EMAILJS_USER_ID":        &c.EmailAccountID,
		"EMAIL_SENDER_NAME":      &c.SenderName,
		"COMPANY_NAME":           &c.CompanyName,
		"GMAIL_CREDENTIALS_PATH": &c.GmailCredentialsPath,
		"GMAIL_TOKEN_PATH":       &c.GmailTokenPath,
		"DOWNLOADS_DIR":          &c.DownloadsDir,
		"RABBITMQ_URL":           &c.RabbitMQURL,
		"NOTICE_EXCHANGE":        &c.NoticeExchange,
	}
}

// ApplyEnv overrides fields with any non-empty environment variables
func (c *Config) ApplyEnv() {
	for key, field := range c.envFields() {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}

	switch c.EmailProvider {
	case ProviderLog:
	case ProviderEmailJS:
		if c.EmailServiceID == "" {
			return fmt.Errorf("email_service_id is required for emailjs")
		}
		if c.EmailTemplateID == "" {
			return fmt.Errorf("email_template_id is required for emailjs")
		}
		if c.EmailAccountID == "" {
			return fmt.Errorf("email_account_id is required for emailjs")
		}
	case ProviderGmail:
		if c.GmailCredentialsPath == "" {
			return fmt.Errorf("gmail_credentials_path is required for gmail")
		}
		if _, err := os.Stat(c.GmailCredentialsPath); err != nil {
			return fmt.Errorf("gmail credentials file not found: %w", err)
		}
	default:
		return fmt.Errorf("unknown email_provider %q", c.EmailProvider)
	}

	return nil
}

// EmailSettings returns the provider identifiers used for candidate emails
func (c *Config) EmailSettings() email.Settings {
	return email.Settings{
		ServiceID:   c.EmailServiceID,
		TemplateID:  c.EmailTemplateID,
		AccountID:   c.EmailAccountID,
		SenderName:  c.SenderName,
		CompanyName: c.CompanyName,
	}
}
