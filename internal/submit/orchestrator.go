// Package submit drives the two-phase outbound submission of a completed
// form: first the onboarding API, then the task tracking service. Both calls
// are best-effort. A failed integration is logged and recorded but never
// fails the submission; the only fatal path is a local error outside the two
// adapter calls.
package submit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edibridge/onboard/internal/apiclient"
	"github.com/edibridge/onboard/internal/clickup"
	"github.com/edibridge/onboard/internal/database"
	"github.com/edibridge/onboard/internal/forms"
)

// Default redirect after a successful submission: back to the application
// root, with a short delay so the user can read the success message.
const (
	DefaultRedirectTarget = "/"
	DefaultRedirectDelay  = 1 * time.Second
)

// Orchestrator submits a form session to the external services and records
// the attempt.
type Orchestrator struct {
	api            *apiclient.Client
	tasks          *clickup.Client
	db             *database.Database
	redirectTarget string
	redirectDelay  time.Duration
}

// New creates an orchestrator. tasks may be nil when no task tracking
// credential is configured: the task creation step is then skipped entirely.
// db may be nil to disable the attempt log.
func New(api *apiclient.Client, tasks *clickup.Client, db *database.Database) *Orchestrator {
	return &Orchestrator{
		api:            api,
		tasks:          tasks,
		db:             db,
		redirectTarget: DefaultRedirectTarget,
		redirectDelay:  DefaultRedirectDelay,
	}
}

// Outcome is the unified result of one submission, ready for display.
type Outcome struct {
	Status     forms.Status
	Message    string
	APISuccess bool
	APIError   string
	Task       *clickup.Task
	TaskError  string

	// Redirect is set only on success: the view should send the browser to
	// this target after RedirectDelay.
	Redirect      string
	RedirectDelay time.Duration
}

// Submit runs the submission flow for the session. The returned outcome has
// status succeeded unless a local error occurred while preparing the
// submission; integration failures are reported inside the outcome but do
// not fail it. Re-entrant calls while a submission is in flight return a
// submitting outcome and do nothing.
func (o *Orchestrator) Submit(ctx context.Context, session *forms.Session) (outcome Outcome) {
	if !session.BeginSubmit() {
		return Outcome{Status: forms.StatusSubmitting, Message: "Submission already in progress"}
	}

	payload := session.Payload()

	// Anything that blows up outside the two adapter calls is a local error
	// and the one fatal path of the flow.
	defer func() {
		if r := recover(); r != nil {
			reason := fmt.Sprintf("%v", r)
			slog.Error("Error submitting form", "error", reason)
			session.FinishSubmit(forms.StatusFailed, reason)
			outcome = Outcome{
				Status:  forms.StatusFailed,
				Message: "Failed to submit form: " + reason,
			}
			o.record(outcome, session)
		}
	}()

	for _, tx := range payload.SelectedTransactions {
		if err := tx.Validate(); err != nil {
			// Diagnostic only: the view constrains these values.
			slog.Warn("Transaction entry has unexpected values", "type", tx.Type, "error", err)
		}
	}

	// Phase 1: primary onboarding API. Failure is recorded, not fatal.
	res := o.api.SubmitOnboarding(ctx, payload)
	outcome.APISuccess = res.Success
	if res.Success {
		slog.Info("API submission successful", "company", payload.Section1Data.CompanyName)
	} else {
		outcome.APIError = res.Error
		slog.Warn("API submission failed", "error", res.Error)
	}

	// Phase 2: tracking task, only when a credential is configured. Failure
	// is caught here and never propagates.
	if o.tasks != nil {
		task, err := o.tasks.CreateTask(ctx, payload)
		if err != nil {
			outcome.TaskError = err.Error()
			slog.Warn("Task tracking integration failed", "error", err)
		} else {
			outcome.Task = task
		}
	}

	outcome.Status = forms.StatusSucceeded
	outcome.Message = successMessage(outcome)
	outcome.Redirect = o.redirectTarget
	outcome.RedirectDelay = o.redirectDelay
	session.FinishSubmit(forms.StatusSucceeded, "")

	o.record(outcome, session)
	return outcome
}

func successMessage(outcome Outcome) string {
	msg := "✅ Form submitted successfully!"
	if outcome.APISuccess {
		msg += "\n\n📤 Data sent to API"
	}
	if outcome.Task != nil {
		msg += fmt.Sprintf("\n\n📋 Task created in ClickUp: %q\nTask ID: %s", outcome.Task.Name, outcome.Task.ID)
	}
	return msg
}

// record appends the attempt to the submission log. Log failures are not
// surfaced to the user.
func (o *Orchestrator) record(outcome Outcome, session *forms.Session) {
	if o.db == nil {
		return
	}

	payload := session.Payload()
	attempt := &database.SubmissionAttempt{
		CompanyName:  payload.Section1Data.CompanyName,
		ContactEmail: payload.Section1Data.ContactEmail,
		Status:       string(outcome.Status),
		APISuccess:   outcome.APISuccess,
		APIError:     outcome.APIError,
	}
	if outcome.Status == forms.StatusFailed {
		attempt.FailReason = outcome.Message
	}
	if outcome.Task != nil {
		attempt.TaskID = outcome.Task.ID
		attempt.TaskName = outcome.Task.Name
		attempt.TaskURL = outcome.Task.URL
	}

	if err := o.db.CreateSubmissionAttempt(attempt, payload); err != nil {
		slog.Error("Failed to record submission attempt", "error", err)
	}
}
