package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/fmuoria/recruiter-dashboard/internal/config"
)

// createSettingsTab edits the persisted configuration. Changes apply on restart.
func (a *App) createSettingsTab() fyne.CanvasObject {
	baseURLEntry := widget.NewEntry()
	baseURLEntry.SetText(a.config.APIBaseURL)

	providerSelect := widget.NewSelect([]string{config.ProviderLog, config.ProviderEmailJS, config.ProviderGmail}, nil)
	providerSelect.SetSelected(a.config.EmailProvider)

	serviceEntry := widget.NewEntry()
	serviceEntry.SetText(a.config.EmailServiceID)
	templateEntry := widget.NewEntry()
	templateEntry.SetText(a.config.EmailTemplateID)
	accountEntry := widget.NewEntry()
	accountEntry.SetText(a.config.EmailAccountID)
	senderEntry := widget.NewEntry()
	senderEntry.SetText(a.config.SenderName)
	companyEntry := widget.NewEntry()
	companyEntry.SetText(a.config.CompanyName)

	gmailCredsEntry := widget.NewEntry()
	gmailCredsEntry.SetText(a.config.GmailCredentialsPath)
	gmailTokenEntry := widget.NewEntry()
	gmailTokenEntry.SetText(a.config.GmailTokenPath)

	downloadsEntry := widget.NewEntry()
	downloadsEntry.SetText(a.config.DownloadsDir)

	rabbitEntry := widget.NewPasswordEntry()
	rabbitEntry.SetText(a.config.RabbitMQURL)
	exchangeEntry := widget.NewEntry()
	exchangeEntry.SetText(a.config.NoticeExchange)

	gmailCredsBtn := widget.NewButton("Browse...", func() {
		dialog.ShowFileOpen(func(uc fyne.URIReadCloser, err error) {
			if err == nil && uc != nil {
				gmailCredsEntry.SetText(uc.URI().Path())
				uc.Close()
			}
		}, a.mainWindow)
	})

	downloadsBtn := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err == nil && dir != nil {
				downloadsEntry.SetText(dir.Path())
			}
		}, a.mainWindow)
	})

	form := widget.NewForm(
		widget.NewFormItem("Backend URL", baseURLEntry),
		widget.NewFormItem("Email Provider", providerSelect),
		widget.NewFormItem("Service ID", serviceEntry),
		widget.NewFormItem("Template ID", templateEntry),
		widget.NewFormItem("Account ID", accountEntry),
		widget.NewFormItem("Sender Name", senderEntry),
		widget.NewFormItem("Company Name", companyEntry),
		widget.NewFormItem("Gmail Credentials", container.NewBorder(nil, nil, nil, gmailCredsBtn, gmailCredsEntry)),
		widget.NewFormItem("Gmail Token File", gmailTokenEntry),
		widget.NewFormItem("Downloads Folder", container.NewBorder(nil, nil, nil, downloadsBtn, downloadsEntry)),
		widget.NewFormItem("RabbitMQ URL", rabbitEntry),
		widget.NewFormItem("Notice Exchange", exchangeEntry),
	)

	collect := func() *config.Config {
		cfg := *a.config
		cfg.APIBaseURL = baseURLEntry.Text
		cfg.EmailProvider = providerSelect.Selected
		cfg.EmailServiceID = serviceEntry.Text
		cfg.EmailTemplateID = templateEntry.Text
		cfg.EmailAccountID = accountEntry.Text
		cfg.SenderName = senderEntry.Text
		cfg.CompanyName = companyEntry.Text
		cfg.GmailCredentialsPath = gmailCredsEntry.Text
		cfg.GmailTokenPath = gmailTokenEntry.Text
		cfg.DownloadsDir = downloadsEntry.Text
		cfg.RabbitMQURL = rabbitEntry.Text
		cfg.NoticeExchange = exchangeEntry.Text
		return &cfg
	}

	saveBtn := widget.NewButton("Save Settings", func() {
		cfg := collect()
		if err := cfg.Save(); err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		a.config = cfg
		dialog.ShowInformation("Success", "Settings saved. Restart the app to apply them.", a.mainWindow)
	})

	validateBtn := widget.NewButton("Validate", func() {
		if err := collect().Validate(); err != nil {
			dialog.ShowError(fmt.Errorf("validation failed: %w", err), a.mainWindow)
			return
		}
		dialog.ShowInformation("Success", "Configuration is valid", a.mainWindow)
	})

	clearBtn := widget.NewButton("Clear Downloads", func() {
		dialog.ShowConfirm("Clear Downloads", "Delete every downloaded resume?", func(ok bool) {
			if !ok {
				return
			}
			if err := a.services.Downloader.Clear(); err != nil {
				dialog.ShowError(err, a.mainWindow)
				return
			}
			dialog.ShowInformation("Success", "Downloaded resumes deleted", a.mainWindow)
		}, a.mainWindow)
	})

	return container.NewVScroll(container.NewVBox(
		form,
		container.NewHBox(saveBtn, validateBtn, clearBtn),
	))
}
