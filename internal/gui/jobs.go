package gui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/fmuoria/recruiter-dashboard/internal/export"
	"github.com/fmuoria/recruiter-dashboard/internal/ingestion"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/render"
	"github.com/fmuoria/recruiter-dashboard/internal/viewmodel"
)

var detailHeaders = []string{"Select", "Name", "Email", "Position", "Match", "Tier"}

// createJobsTab lists the active jobs; selecting one opens its detail window
func (a *App) createJobsTab() fyne.CanvasObject {
	a.jobs = viewmodel.NewJobList(a.services.API, a.notifier)

	var jobs []models.Job
	list := widget.NewList(
		func() int { return len(jobs) },
		func() fyne.CanvasObject {
			return container.NewVBox(
				widget.NewLabelWithStyle("Title", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel("Details"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(jobs[id].Title)
			box.Objects[1].(*widget.Label).SetText(jobMeta(jobs[id]))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		list.UnselectAll()
		a.openJobDetail(jobs[id].ID)
	}

	status := widget.NewLabel(loadStatus(true, "", 0, "job"))
	a.jobs.Subscribe(func(st viewmodel.State[[]models.Job]) {
		fyne.Do(func() {
			if st.Data != nil {
				jobs = *st.Data
			}
			status.SetText(loadStatus(st.IsLoading, st.Error, len(jobs), "job"))
			list.Refresh()
		})
	})

	refreshBtn := widget.NewButton("Refresh", func() { a.load(a.jobs.Load) })
	a.load(a.jobs.Load)

	return container.NewBorder(container.NewHBox(status, layout.NewSpacer(), refreshBtn), nil, nil, nil, list)
}

// openJobDetail shows one job, its candidates, the resume upload and the bulk email action
func (a *App) openJobDetail(jobID string) {
	w := a.fyneApp.NewWindow("Job Details")
	w.Resize(fyne.NewSize(1000, 700))

	detail := viewmodel.NewJobDetail(a.services.API, jobID, a.services.Sender, a.services.Settings, a.notifier)

	title := widget.NewLabelWithStyle("Loading job...", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	meta := widget.NewLabel("")
	skills := widget.NewLabel("")
	description := widget.NewLabel("")
	description.Wrapping = fyne.TextWrapWord

	var cards []render.Card
	selectionLabel := widget.NewLabel(selectionStatus(0, 0))
	updateSelection := func() {
		selectionLabel.SetText(selectionStatus(detail.Selection.Len(), len(cards)))
	}

	table := widget.NewTable(
		func() (int, int) { return len(cards) + 1, len(detailHeaders) },
		func() fyne.CanvasObject {
			return container.NewStack(widget.NewCheck("", nil), widget.NewLabel("Template"))
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			cell := obj.(*fyne.Container)
			check := cell.Objects[0].(*widget.Check)
			label := cell.Objects[1].(*widget.Label)

			if id.Row == 0 {
				check.Hide()
				label.Show()
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(detailHeaders[id.Col])
				return
			}

			card := cards[id.Row-1]
			label.TextStyle = fyne.TextStyle{}
			if id.Col == 0 {
				label.Hide()
				check.Show()
				check.OnChanged = nil
				check.SetChecked(detail.Selection.Contains(card.ID))
				check.OnChanged = func(bool) {
					detail.ToggleCandidate(card.ID)
					updateSelection()
				}
				return
			}

			check.Hide()
			label.Show()
			switch id.Col {
			case 1:
				label.SetText(card.Name)
			case 2:
				label.SetText(card.Email)
			case 3:
				label.SetText(card.Position)
			case 4:
				label.SetText(card.Match)
			case 5:
				label.SetText(string(card.Tier))
			}
		},
	)
	for col, width := range []float32{60, 200, 220, 200, 80, 80} {
		table.SetColumnWidth(col, width)
	}
	table.OnSelected = func(id widget.TableCellID) {
		table.UnselectAll()
		if id.Row > 0 && id.Col > 0 && id.Row-1 < len(cards) {
			a.showProfile(cards[id.Row-1].ID, w)
		}
	}

	detail.Subscribe(func(st viewmodel.State[models.Job]) {
		fyne.Do(func() {
			if st.Data == nil {
				if st.Error != "" {
					title.SetText(st.Error)
				}
				return
			}
			job := *st.Data
			w.SetTitle(job.Title)
			title.SetText(job.Title)
			meta.SetText(strings.TrimSpace(jobMeta(job) + "  " + experienceRange(job)))
			skills.SetText("Required skills: " + strings.Join(job.RequiredSkills, ", "))
			description.SetText(job.Description)
			cards = render.Cards(job.Candidates)
			table.Refresh()
			updateSelection()
		})
	})

	selectAllBtn := widget.NewButton("Select All", func() {
		detail.SelectAll()
		table.Refresh()
		updateSelection()
	})

	var sendBtn *widget.Button
	sendBtn = widget.NewButton("Send Interview Emails", func() {
		sendBtn.Disable()
		go func() {
			report, err := detail.SendEmails(a.ctx)
			if err != nil {
				log.Printf("[GUI] Email dispatch: %v", err)
			}
			fyne.Do(func() {
				sendBtn.Enable()
				if len(report.Outcomes) > 0 {
					table.Refresh()
					updateSelection()
				}
			})
		}()
	})

	exportBtn := widget.NewButton("Export to Excel", func() { a.exportJob(detail, w) })

	uploadSection := a.createUploadSection(detail, w)

	header := container.NewVBox(title, meta, skills, description, widget.NewSeparator(), uploadSection, widget.NewSeparator(),
		container.NewHBox(selectionLabel, layout.NewSpacer(), selectAllBtn, sendBtn, exportBtn))

	w.SetContent(container.NewBorder(header, nil, nil, nil, table))
	w.SetOnClosed(detail.Close)
	w.Show()

	a.load(detail.Load)
}

// createUploadSection builds the resume batch picker and upload button for a job
func (a *App) createUploadSection(detail *viewmodel.JobDetail, w fyne.Window) fyne.CanvasObject {
	filesLabel := widget.NewLabel("No files selected")
	filesLabel.Wrapping = fyne.TextWrapWord
	statusLabel := widget.NewLabel("")

	showBatch := func() {
		files := detail.Upload.Files()
		if len(files) == 0 {
			filesLabel.SetText("No files selected")
		} else {
			names := make([]string, len(files))
			for i, f := range files {
				names[i] = filepath.Base(f)
			}
			filesLabel.SetText(fmt.Sprintf("%d file(s): %s", len(files), strings.Join(names, ", ")))
		}
		statusLabel.SetText(detail.Upload.Status())
	}

	addFileBtn := widget.NewButton("Add Resume...", func() {
		fd := dialog.NewFileOpen(func(uc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uc == nil {
				return
			}
			defer uc.Close()
			detail.Upload.Add(uc.URI().Path())
			showBatch()
		}, w)
		fd.SetFilter(storage.NewExtensionFileFilter(ingestion.ResumeExtensions))
		fd.Show()
	})

	folderBtn := widget.NewButton("Choose Folder...", func() {
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if dir == nil {
				return
			}
			paths, err := ingestion.ListResumes(dir.Path())
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			detail.Upload.Select(paths)
			showBatch()
		}, w)
	})

	var uploadBtn *widget.Button
	uploadBtn = widget.NewButton("Upload Resumes", func() {
		uploadBtn.Disable()
		statusLabel.SetText(detail.Upload.Begin())
		go func() {
			if _, err := detail.Upload.Submit(a.ctx); err != nil {
				log.Printf("[GUI] Upload: %v", err)
			}
			fyne.Do(func() {
				uploadBtn.Enable()
				showBatch()
			})
		}()
	})

	return container.NewVBox(
		widget.NewLabelWithStyle("Upload Resumes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(addFileBtn, folderBtn, uploadBtn, statusLabel),
		filesLabel,
	)
}

// exportJob saves the loaded job's candidates to a workbook chosen by the user
func (a *App) exportJob(detail *viewmodel.JobDetail, w fyne.Window) {
	job, ok := detail.Job()
	if !ok || len(job.Candidates) == 0 {
		dialog.ShowError(fmt.Errorf("no candidates to export"), w)
		return
	}

	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		outputPath := uc.URI().Path()
		uc.Close()

		written, err := export.ExportCandidates(job, job.Candidates, outputPath)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to export: %w", err), w)
			return
		}
		dialog.ShowInformation("Success", "Candidates exported to "+filepath.Base(written), w)
	}, w)
	fd.SetFileName(fmt.Sprintf("Candidates_%s.xlsx", time.Now().Format("2006-01-02_150405")))
	fd.Show()
}
