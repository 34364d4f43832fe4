package gui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/fmuoria/recruiter-dashboard/internal/config"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
	"github.com/fmuoria/recruiter-dashboard/internal/viewmodel"
)

const appID = "io.github.fmuoria.recruiterdashboard"

// App represents the main GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	config     *config.Config
	services   *Services
	notifier   notify.Notifier
	history    *notify.Recorder
	ctx        context.Context
	cancelFunc context.CancelFunc

	statusLabel *widget.Label

	jobs      *viewmodel.Screen[[]models.Job]
	directory *viewmodel.CandidateDirectory
	form      *viewmodel.JobForm
}

// NewApp creates a new GUI application
func NewApp() *App {
	a := app.NewWithID(appID)
	w := a.NewWindow("Recruiter Dashboard")
	w.Resize(fyne.NewSize(1100, 750))

	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Printf("[GUI] Failed to load configuration: %v", err)
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()

	ctx, cancel := context.WithCancel(context.Background())
	guiApp := &App{
		fyneApp:     a,
		mainWindow:  w,
		config:      cfg,
		history:     &notify.Recorder{},
		ctx:         ctx,
		cancelFunc:  cancel,
		statusLabel: widget.NewLabel("Ready"),
	}

	svc, startupErr := NewServices(ctx, cfg)
	if startupErr != nil {
		log.Printf("[GUI] %v; emails will only be logged", startupErr)
		fallback := *cfg
		fallback.EmailProvider = config.ProviderLog
		svc, err = NewServices(ctx, &fallback)
		if err != nil {
			log.Fatalf("[GUI] Failed to start: %v", err)
		}
	}
	guiApp.services = svc
	guiApp.notifier = svc.Notifier(notify.Multi{guiApp.history, notify.Func(guiApp.showNotice)})

	guiApp.setupUI()

	if startupErr != nil {
		dialog.ShowError(startupErr, w)
	}

	return guiApp
}

// Run starts the GUI application and releases resources once the main window closes
func (a *App) Run() {
	a.mainWindow.ShowAndRun()
	a.cancelFunc()
	a.services.Close()
}

// setupUI initializes all UI components
func (a *App) setupUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Jobs", a.createJobsTab()),
		container.NewTabItem("Candidates", a.createCandidatesTab()),
		container.NewTabItem("Create Job", a.createJobFormTab()),
		container.NewTabItem("Settings", a.createSettingsTab()),
	)

	historyBtn := widget.NewButton("Notices", a.showHistory)
	statusBar := container.NewHBox(a.statusLabel, layout.NewSpacer(), historyBtn)

	a.mainWindow.SetContent(container.NewBorder(nil, statusBar, nil, nil, tabs))
}

// showNotice puts a notice in the status bar and raises success and error
// notices as system notifications
func (a *App) showNotice(n notify.Notice) {
	fyne.Do(func() {
		a.statusLabel.SetText(noticeLine(n))
		if n.Level == notify.LevelSuccess || n.Level == notify.LevelError {
			a.fyneApp.SendNotification(fyne.NewNotification(noticeTitle(n), n.Message))
		}
	})
}

// showHistory lists the notices raised this session, newest first
func (a *App) showHistory() {
	notices := a.history.Notices()
	if len(notices) == 0 {
		dialog.ShowInformation("Notices", "No notices yet", a.mainWindow)
		return
	}

	list := widget.NewList(
		func() int { return len(notices) },
		func() fyne.CanvasObject { return widget.NewLabel("notice") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			n := notices[len(notices)-1-id]
			obj.(*widget.Label).SetText(noticeTitle(n) + ": " + noticeLine(n))
		},
	)

	d := dialog.NewCustom("Notices", "Close", list, a.mainWindow)
	d.Resize(fyne.NewSize(600, 400))
	d.Show()
}

// load runs a screen load off the UI goroutine
func (a *App) load(load func(ctx context.Context) error) {
	go func() {
		if err := load(a.ctx); err != nil {
			log.Printf("[GUI] Load finished with: %v", err)
		}
	}()
}
