package gui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/fmuoria/recruiter-dashboard/internal/ingestion"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/render"
	"github.com/fmuoria/recruiter-dashboard/internal/viewmodel"
)

var directoryHeaders = []string{"Name", "Email", "Position", "Education", "Skills", "Match"}

// createCandidatesTab shows every candidate as a grid of cards or a table, filtered by search
func (a *App) createCandidatesTab() fyne.CanvasObject {
	a.directory = viewmodel.NewCandidateDirectory(a.services.API, a.notifier)

	var visible []render.Card

	table := widget.NewTable(
		func() (int, int) { return len(visible) + 1, len(directoryHeaders) },
		func() fyne.CanvasObject { return widget.NewLabel("Template") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(directoryHeaders[id.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{}
			card := visible[id.Row-1]
			switch id.Col {
			case 0:
				label.SetText(card.Name)
			case 1:
				label.SetText(card.Email)
			case 2:
				label.SetText(card.Position)
			case 3:
				label.SetText(card.Education)
			case 4:
				label.SetText(card.SkillsSummary)
			case 5:
				label.SetText(card.Match)
			}
		},
	)
	for col, width := range []float32{180, 220, 180, 260, 240, 70} {
		table.SetColumnWidth(col, width)
	}
	table.OnSelected = func(id widget.TableCellID) {
		table.UnselectAll()
		if id.Row > 0 && id.Row-1 < len(visible) {
			a.showProfile(visible[id.Row-1].ID, a.mainWindow)
		}
	}

	grid := container.NewGridWrap(fyne.NewSize(280, 240))
	gridScroll := container.NewVScroll(grid)
	body := container.NewStack()

	status := widget.NewLabel(loadStatus(true, "", 0, "candidate"))

	redraw := func() {
		visible = render.Cards(a.directory.Visible())
		if a.directory.View() == render.ViewGrid {
			objs := make([]fyne.CanvasObject, 0, len(visible))
			for _, card := range visible {
				objs = append(objs, a.candidateCard(card))
			}
			grid.Objects = objs
			grid.Refresh()
			body.Objects = []fyne.CanvasObject{gridScroll}
		} else {
			table.Refresh()
			body.Objects = []fyne.CanvasObject{table}
		}
		body.Refresh()
	}

	search := widget.NewEntry()
	search.SetPlaceHolder("Search by name, email, position or skill")
	search.OnChanged = func(term string) {
		a.directory.SetSearch(term)
		redraw()
	}

	var toggleBtn *widget.Button
	toggleBtn = widget.NewButton(viewToggleLabel(a.directory.View()), func() {
		mode := a.directory.ToggleView()
		toggleBtn.SetText(viewToggleLabel(mode))
		redraw()
	})

	a.directory.Subscribe(func(st viewmodel.State[[]models.Candidate]) {
		fyne.Do(func() {
			count := 0
			if st.Data != nil {
				count = len(*st.Data)
			}
			status.SetText(loadStatus(st.IsLoading, st.Error, count, "candidate"))
			redraw()
		})
	})

	refreshBtn := widget.NewButton("Refresh", func() { a.load(a.directory.Load) })
	a.load(a.directory.Load)

	top := container.NewBorder(nil, nil, nil, container.NewHBox(toggleBtn, refreshBtn), search)
	return container.NewBorder(container.NewVBox(top, status), nil, nil, nil, body)
}

// candidateCard is one tile of the candidate grid
func (a *App) candidateCard(card render.Card) fyne.CanvasObject {
	skills := strings.Join(card.Skills, ", ")
	if skills == "" {
		skills = render.NoSkills
	}
	if card.MoreSkills != "" {
		skills += " " + card.MoreSkills
	}

	skillsLabel := widget.NewLabel(skills)
	skillsLabel.Wrapping = fyne.TextWrapWord
	educationLabel := widget.NewLabel(card.Education)
	educationLabel.Wrapping = fyne.TextWrapWord

	viewBtn := widget.NewButton("View Profile", func() { a.showProfile(card.ID, a.mainWindow) })

	return widget.NewCard(card.Name, card.Position, container.NewVBox(
		widget.NewLabel(card.Email),
		educationLabel,
		skillsLabel,
		container.NewHBox(widget.NewLabel(fmt.Sprintf("Match: %s (%s)", card.Match, card.Tier)), layout.NewSpacer(), viewBtn),
	))
}

// showProfile opens the profile of one candidate over parent
func (a *App) showProfile(candidateID string, parent fyne.Window) {
	profile := viewmodel.NewCandidateProfile(a.services.API, candidateID, a.notifier)

	body := container.NewVBox(widget.NewLabel("Loading profile..."))
	d := dialog.NewCustom("Candidate Profile", "Close", container.NewVScroll(body), parent)
	d.Resize(fyne.NewSize(620, 520))
	d.SetOnClosed(profile.Close)

	profile.Subscribe(func(st viewmodel.State[models.Candidate]) {
		fyne.Do(func() {
			body.Objects = a.profileContent(st, parent)
			body.Refresh()
		})
	})

	d.Show()
	a.load(profile.Load)
}

func (a *App) profileContent(st viewmodel.State[models.Candidate], parent fyne.Window) []fyne.CanvasObject {
	if st.Data == nil {
		if st.Error != "" {
			return []fyne.CanvasObject{widget.NewLabel(st.Error)}
		}
		return []fyne.CanvasObject{widget.NewLabel("Loading profile...")}
	}

	card := render.NewCard(*st.Data)
	field := func(value string) fyne.CanvasObject {
		v := widget.NewLabel(value)
		v.Wrapping = fyne.TextWrapWord
		return v
	}

	form := widget.NewForm(
		widget.NewFormItem("Email", field(card.Email)),
		widget.NewFormItem("Position", field(card.Position)),
		widget.NewFormItem("Education", field(card.Education)),
		widget.NewFormItem("Skills", field(card.SkillsSummary)),
		widget.NewFormItem("Match", field(fmt.Sprintf("%s (%s)", card.Match, card.Tier))),
		widget.NewFormItem("Missing", field(card.MissingKeywords)),
		widget.NewFormItem("Summary", field(card.ProfileSummary)),
	)

	objs := []fyne.CanvasObject{
		widget.NewLabelWithStyle(card.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
	}
	if card.ResumeURL != "" {
		objs = append(objs, widget.NewButton("Download Resume", func() {
			a.downloadResume(card.ResumeURL, parent)
		}))
	}
	return objs
}

// downloadResume saves a resume into the downloads folder and previews its text
func (a *App) downloadResume(resumeURL string, parent fyne.Window) {
	progress := dialog.NewCustomWithoutButtons("Downloading", widget.NewProgressBarInfinite(), parent)
	progress.Show()

	go func() {
		path, text, err := a.services.Downloader.Preview(a.ctx, resumeURL)
		fyne.Do(func() {
			progress.Hide()
			switch {
			case err != nil && path == "":
				dialog.ShowError(err, parent)
			case errors.Is(err, ingestion.ErrUnsupportedFormat), errors.Is(err, ingestion.ErrBinaryContent):
				dialog.ShowInformation("Resume Saved", "Saved to "+path+"\nNo preview is available for this format.", parent)
			case err != nil:
				dialog.ShowInformation("Resume Saved", "Saved to "+path+"\nPreview failed: "+err.Error(), parent)
			default:
				preview := widget.NewLabel(text)
				preview.Wrapping = fyne.TextWrapWord
				d := dialog.NewCustom(filepath.Base(path), "Close", container.NewVScroll(preview), parent)
				d.Resize(fyne.NewSize(700, 600))
				d.Show()
			}
		})
	}()
}
