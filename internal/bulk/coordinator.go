package bulk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/fmuoria/recruiter-dashboard/internal/email"
	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/notify"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Notice texts shown for a bulk send
const (
	MsgNoSelection = "Please select at least one candidate to send an email."
	MsgSendFailed  = "There was an error sending emails. Please try again."
)

// Placeholder interview details used when a candidate has none
const (
	DefaultInterviewDate     = "To be scheduled"
	DefaultInterviewTime     = "To be confirmed"
	DefaultInterviewLocation = "To be shared"
	DefaultMessage           = "Thank you for applying. We were impressed by your profile and would like to invite you to an interview. We will be in touch with further details."
)

var (
	ErrNoSelection    = errors.New("no candidates selected")
	ErrSendInProgress = errors.New("a send is already in progress")
)

// Phase is where the coordinator is in its select and send cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelecting
	PhaseSending
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseSending:
		return "sending"
	default:
		return "idle"
	}
}

// Outcome is the result of one recipient's send
type Outcome struct {
	CandidateID string
	Email       string
	RequestID   uuid.UUID
	Err         error
}

// Report lists every recipient's outcome in dispatch order
type Report struct {
	Outcomes []Outcome
}

// Failed returns the outcomes that errored
func (r Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Succeeded counts the recipients whose send went through
func (r Report) Succeeded() int {
	return len(r.Outcomes) - len(r.Failed())
}

// EmailDispatchError is returned when at least one send in a batch failed
type EmailDispatchError struct {
	Failed int
	Total  int
}

func (e *EmailDispatchError) Error() string {
	return fmt.Sprintf("failed to send %d of %d emails", e.Failed, e.Total)
}

// Coordinator sends a templated email to every selected candidate of a job
type Coordinator struct {
	mu       sync.Mutex
	sending  bool
	sel      *Selection
	sender   email.Sender
	settings email.Settings
	notifier notify.Notifier
	screen   string
}

// NewCoordinator wires a coordinator over sel. Notices are tagged with screen.
func NewCoordinator(sel *Selection, sender email.Sender, settings email.Settings, notifier notify.Notifier, screen string) *Coordinator {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Coordinator{
		sel:      sel,
		sender:   sender,
		settings: settings,
		notifier: notifier,
		screen:   screen,
	}
}

// Selection returns the selection the coordinator sends to
func (c *Coordinator) Selection() *Selection {
	return c.sel
}

// Phase reports the current phase
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	sending := c.sending
	c.mu.Unlock()

	switch {
	case sending:
		return PhaseSending
	case c.sel.Len() > 0:
		return PhaseSelecting
	default:
		return PhaseIdle
	}
}

// Send dispatches one email per selected candidate of job concurrently and
// waits for all of them. On full success the selection is cleared; otherwise it
// is kept and an EmailDispatchError is returned with the per-recipient report.
func (c *Coordinator) Send(ctx context.Context, job models.Job) (Report, error) {
	c.sel.Prune(job.CandidateIDs())
	if c.sel.Len() == 0 {
		c.notify(notify.LevelError, MsgNoSelection)
		return Report{}, ErrNoSelection
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return Report{}, ErrSendInProgress
	}
	c.sending = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	recipients := selectedCandidates(job, c.sel)
	report := Report{Outcomes: make([]Outcome, len(recipients))}

	var g errgroup.Group
	for i, cand := range recipients {
		g.Go(func() error {
			o := Outcome{CandidateID: cand.ID, Email: cand.Email, RequestID: uuid.New()}
			o.Err = c.sender.Send(ctx, c.settings.Request(Params(job, cand, c.settings)))
			if o.Err != nil {
				log.Printf("[Bulk] Send %s to %s failed: %v", o.RequestID, cand.Email, o.Err)
			}
			report.Outcomes[i] = o
			return o.Err
		})
	}
	g.Wait()

	failed := len(report.Failed())
	if failed > 0 {
		c.notify(notify.LevelError, MsgSendFailed)
		return report, &EmailDispatchError{Failed: failed, Total: len(recipients)}
	}

	log.Printf("[Bulk] Sent %d email(s) for job %s", len(recipients), job.ID)
	c.notify(notify.LevelSuccess, fmt.Sprintf("Emails sent to %d candidate(s).", len(recipients)))
	c.sel.Clear()
	return report, nil
}

func (c *Coordinator) notify(level notify.Level, msg string) {
	c.notifier.Notify(notify.New(level, c.screen, msg))
}

// selectedCandidates keeps the job's candidate order
func selectedCandidates(job models.Job, sel *Selection) []models.Candidate {
	var out []models.Candidate
	for _, cand := range job.Candidates {
		if sel.Contains(cand.ID) {
			out = append(out, cand)
		}
	}
	return out
}

// Params builds the template parameters for one candidate
func Params(job models.Job, cand models.Candidate, settings email.Settings) map[string]string {
	company := job.Company
	if company == "" {
		company = settings.CompanyName
	}
	return map[string]string{
		"to_email":           cand.Email,
		"candidate_name":     cand.Name,
		"candidate_email":    cand.Email,
		"job_title":          job.Title,
		"company_name":       company,
		"from_name":          settings.SenderName,
		"interview_date":     orDefault(cand.InterviewDate, DefaultInterviewDate),
		"interview_time":     orDefault(cand.InterviewTime, DefaultInterviewTime),
		"interview_location": orDefault(cand.InterviewLocation, DefaultInterviewLocation),
		"message":            orDefault(cand.Message, DefaultMessage),
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
