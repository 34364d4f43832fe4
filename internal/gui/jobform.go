package gui

import (
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
	"github.com/fmuoria/recruiter-dashboard/internal/viewmodel"
)

var experienceLevels = []string{"Entry Level", "Mid Level", "Senior Level", "Lead", "Executive"}

// createJobFormTab builds the create-job form. A created job refreshes the listings.
func (a *App) createJobFormTab() fyne.CanvasObject {
	a.form = viewmodel.NewJobForm(a.services.API, a.notifier, func(string) {
		a.load(a.jobs.Load)
	})

	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("e.g., Senior Software Engineer")
	departmentEntry := widget.NewEntry()
	departmentEntry.SetPlaceHolder("e.g., Engineering")
	locationEntry := widget.NewEntry()
	locationEntry.SetPlaceHolder("e.g., Remote")

	descriptionEntry := widget.NewMultiLineEntry()
	descriptionEntry.SetPlaceHolder("Enter detailed job description...")
	descriptionEntry.SetMinRowsVisible(5)

	levelSelect := widget.NewSelect(experienceLevels, nil)
	levelSelect.PlaceHolder = "Select experience level"
	minEntry := widget.NewEntry()
	minEntry.SetPlaceHolder("0")
	maxEntry := widget.NewEntry()
	maxEntry.SetPlaceHolder("0")

	skillsBox := container.NewHBox()
	var showSkills func()
	showSkills = func() {
		skillsBox.Objects = nil
		for _, skill := range a.form.Draft().RequiredSkills {
			skillsBox.Add(widget.NewButton(skill+" x", func() {
				a.form.RemoveSkill(skill)
				showSkills()
			}))
		}
		skillsBox.Refresh()
	}

	skillEntry := widget.NewEntry()
	skillEntry.SetPlaceHolder("Add a required skill")
	addSkill := func() {
		if a.form.AddSkill(skillEntry.Text) {
			showSkills()
		}
		skillEntry.SetText("")
	}
	skillEntry.OnSubmitted = func(string) { addSkill() }
	addSkillBtn := widget.NewButton("Add", addSkill)

	clearForm := func() {
		for _, e := range []*widget.Entry{titleEntry, departmentEntry, locationEntry, descriptionEntry, minEntry, maxEntry, skillEntry} {
			e.SetText("")
		}
		levelSelect.ClearSelected()
		showSkills()
	}

	var submitBtn *widget.Button
	submitBtn = widget.NewButton("Create Job", func() {
		minYears, err := parseYears("Minimum experience", minEntry.Text)
		if err == nil {
			var maxYears int
			maxYears, err = parseYears("Maximum experience", maxEntry.Text)
			if err == nil {
				a.form.Update(func(d *models.JobDraft) {
					d.Title = strings.TrimSpace(titleEntry.Text)
					d.Department = strings.TrimSpace(departmentEntry.Text)
					d.Location = strings.TrimSpace(locationEntry.Text)
					d.Description = strings.TrimSpace(descriptionEntry.Text)
					d.ExperienceLevel = levelSelect.Selected
					d.MinExperience = models.Years(minYears)
					d.MaxExperience = models.Years(maxYears)
				})
			}
		}
		if err != nil {
			a.notifier.Notify(notify.New(notify.LevelWarning, viewmodel.ScreenCreateJob, err.Error()))
			return
		}

		submitBtn.Disable()
		go func() {
			_, err := a.form.Submit(a.ctx)
			if err != nil {
				log.Printf("[GUI] Create job: %v", err)
			}
			fyne.Do(func() {
				submitBtn.Enable()
				if err == nil {
					clearForm()
				}
			})
		}()
	})
	submitBtn.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem("Job Title", titleEntry),
		widget.NewFormItem("Department", departmentEntry),
		widget.NewFormItem("Location", locationEntry),
		widget.NewFormItem("Description", descriptionEntry),
		widget.NewFormItem("Experience Level", levelSelect),
		widget.NewFormItem("Min Experience (years)", minEntry),
		widget.NewFormItem("Max Experience (years)", maxEntry),
		widget.NewFormItem("Required Skills", container.NewBorder(nil, nil, nil, addSkillBtn, skillEntry)),
		widget.NewFormItem("", container.NewHScroll(skillsBox)),
	)

	return container.NewVScroll(container.NewVBox(form, submitBtn))
}
