package gui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
	"github.com/fmuoria/recruiter-dashboard/internal/render"
)

// jobMeta is the second line of a job in the listings
func jobMeta(job models.Job) string {
	parts := []string{}
	if job.Department != "" {
		parts = append(parts, job.Department)
	}
	parts = append(parts, render.DisplayLocation(job.Location))
	if job.ExperienceLevel != "" {
		parts = append(parts, job.ExperienceLevel)
	}
	if t, ok := job.Created(); ok {
		parts = append(parts, "Posted "+t.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " · ")
}

// experienceRange renders "2-5 years", or "" when neither bound is set
func experienceRange(job models.Job) string {
	if job.MinExperience == 0 && job.MaxExperience == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%d years", job.MinExperience, job.MaxExperience)
}

// loadStatus is the one-line summary shown above a loaded list
func loadStatus(loading bool, errMsg string, count int, noun string) string {
	switch {
	case loading:
		return fmt.Sprintf("Loading %ss...", noun)
	case errMsg != "":
		return errMsg
	case count == 1:
		return fmt.Sprintf("1 %s", noun)
	default:
		return fmt.Sprintf("%d %ss", count, noun)
	}
}

// selectionStatus describes the bulk selection of a job
func selectionStatus(selected, total int) string {
	return fmt.Sprintf("%d of %d selected", selected, total)
}

// noticeLine is the status bar text for a notice
func noticeLine(n notify.Notice) string {
	return fmt.Sprintf("%s  %s", n.At.Format("15:04:05"), n.Message)
}

// noticeTitle titles the system notification raised for a notice
func noticeTitle(n notify.Notice) string {
	switch n.Level {
	case notify.LevelSuccess:
		return "Success"
	case notify.LevelError:
		return "Error"
	case notify.LevelWarning:
		return "Warning"
	default:
		return "Recruiter Dashboard"
	}
}

// viewToggleLabel names the layout the toggle button switches to
func viewToggleLabel(current render.ViewMode) string {
	if current == render.ViewGrid {
		return "Table View"
	}
	return "Grid View"
}

// parseYears reads an experience bound. Blank means zero.
func parseYears(label, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a whole number of years", label)
	}
	return n, nil
}
