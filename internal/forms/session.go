// Package forms implements the state model for one onboarding form session.
// A Session is the single source of truth for everything the user has entered:
// the Section 1 company data, the ordered list of selected transactions with
// their per-transaction configuration, the current step and the submission
// status. It performs no I/O; the web layer mutates it through the operations
// below and re-renders from it.
package forms

import (
	"errors"
	"strings"
	"sync"

	"github.com/edibridge/onboard/internal/models"
)

// Step identifies which section of the form the user is working on.
type Step int

const (
	StepCompanyInfo  Step = 1
	StepTransactions Step = 2
)

// Status is the submission state of the session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// File list field names accepted by AttachFiles and RemoveFile.
const (
	FieldSampleFiles    = "sampleFiles"
	FieldSystemDocFiles = "systemDocFiles"
)

var (
	ErrIndexOutOfRange = errors.New("transaction index out of range")
	ErrUnknownField    = errors.New("unknown field name")
	ErrFileOutOfRange  = errors.New("file index out of range")
)

// Event describes one mutation of the session, delivered to subscribers.
type Event struct {
	// Op is the name of the operation that changed the session.
	Op string
	// Field is the field touched, when the operation is field-scoped.
	Field string
}

// Session holds all mutable state for one onboarding form.
// All methods are safe for use from concurrent request handlers.
type Session struct {
	mu sync.Mutex

	company      models.CompanyInfo
	transactions []models.TransactionEntry
	step         Step
	status       Status
	failReason   string

	subscribers []func(Event)
}

// NewSession returns a fresh session at step 1 with everything empty.
func NewSession() *Session {
	return &Session{
		step:   StepCompanyInfo,
		status: StatusIdle,
	}
}

// Subscribe registers fn to be called after every mutation. Used by the web
// layer to log changes; there is no unsubscribe because sessions are
// short-lived. fn runs with the session lock held and must not call back
// into the session.
func (s *Session) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) notify(ev Event) {
	for _, fn := range s.subscribers {
		fn(ev)
	}
}

// UpdateCompanyField sets one Section 1 field by its form name. Values are
// stored as given; validation happens only in CompanyInfoComplete.
// Unknown names return ErrUnknownField.
func (s *Session) UpdateCompanyField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case "companyName":
		s.company.CompanyName = value
	case "contactName":
		s.company.ContactName = value
	case "contactEmail":
		s.company.ContactEmail = value
	case "contactPhone":
		s.company.ContactPhone = value
	case "autoAccepted":
		s.company.AutoAccepted = value
	default:
		return ErrUnknownField
	}
	s.notify(Event{Op: "updateCompanyField", Field: name})
	return nil
}

// CompanyInfo returns a copy of the Section 1 data.
func (s *Session) CompanyInfo() models.CompanyInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company
}

// CompanyInfoComplete reports whether every Section 1 field is non-empty
// after trimming.
func (s *Session) CompanyInfoComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company.Complete()
}

// AdvanceToTransactionStep moves the form to step 2. It is a no-op while
// Section 1 is incomplete: the advance control in the view is disabled in
// that state, this is just defense in depth.
func (s *Session) AdvanceToTransactionStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.company.Complete() {
		return
	}
	s.step = StepTransactions
	s.notify(Event{Op: "advanceToTransactionStep"})
}

// ReturnToCompanyStep moves back to step 1 unconditionally. Section 1 data
// is kept so the user can edit it.
func (s *Session) ReturnToCompanyStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepCompanyInfo
	s.notify(Event{Op: "returnToCompanyStep"})
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// AddTransaction appends a new entry for typeCode with every question
// unanswered. Empty type codes and duplicates are silently ignored, so the
// selection is unique by type code.
func (s *Session) AddTransaction(typeCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(typeCode) == "" {
		return
	}
	for _, t := range s.transactions {
		if t.Type == typeCode {
			return
		}
	}
	s.transactions = append(s.transactions, models.NewTransactionEntry(typeCode))
	s.notify(Event{Op: "addTransaction"})
}

// RemoveTransaction removes the entry at index.
func (s *Session) RemoveTransaction(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.transactions) {
		return ErrIndexOutOfRange
	}
	s.transactions = append(s.transactions[:index], s.transactions[index+1:]...)
	s.notify(Event{Op: "removeTransaction"})
	return nil
}

// UpdateTransactionField replaces one field's value on the entry at index.
// Dependent state is never cascade-cleared: flipping canProvideSamples back
// to "no" leaves any previously attached sample files in place.
func (s *Session) UpdateTransactionField(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.transactions) {
		return ErrIndexOutOfRange
	}
	t := &s.transactions[index]
	switch field {
	case "direction":
		t.Direction = value
	case "frequency":
		t.Frequency = value
	case "requiredOptional":
		t.RequiredOptional = value
	case "hasImplementationGuide":
		t.HasImplementationGuide = value
	case "canProvideSamples":
		t.CanProvideSamples = value
	case "hasMappingSpecs":
		t.HasMappingSpecs = value
	case "hasSystemDocs":
		t.HasSystemDocs = value
	case "require997FromUs":
		t.Require997FromUs = value
	case "willSend997":
		t.WillSend997 = value
	default:
		return ErrUnknownField
	}
	s.notify(Event{Op: "updateTransactionField", Field: field})
	return nil
}

// AttachFiles replaces the whole file list named by field on the entry at
// index, matching native file input semantics: each upload interaction
// replaces the previous selection.
func (s *Session) AttachFiles(index int, field string, files []models.FileRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.transactions) {
		return ErrIndexOutOfRange
	}
	list := make([]models.FileRef, len(files))
	copy(list, files)

	switch field {
	case FieldSampleFiles:
		s.transactions[index].SampleFiles = list
	case FieldSystemDocFiles:
		s.transactions[index].SystemDocFiles = list
	default:
		return ErrUnknownField
	}
	s.notify(Event{Op: "attachFiles", Field: field})
	return nil
}

// RemoveFile removes one file reference from the list named by field,
// preserving the order of the remaining files.
func (s *Session) RemoveFile(index int, field string, fileIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.transactions) {
		return ErrIndexOutOfRange
	}

	var list []models.FileRef
	switch field {
	case FieldSampleFiles:
		list = s.transactions[index].SampleFiles
	case FieldSystemDocFiles:
		list = s.transactions[index].SystemDocFiles
	default:
		return ErrUnknownField
	}

	if fileIndex < 0 || fileIndex >= len(list) {
		return ErrFileOutOfRange
	}
	list = append(list[:fileIndex], list[fileIndex+1:]...)

	if field == FieldSampleFiles {
		s.transactions[index].SampleFiles = list
	} else {
		s.transactions[index].SystemDocFiles = list
	}
	s.notify(Event{Op: "removeFile", Field: field})
	return nil
}

// Transactions returns a copy of the selected transactions in selection order.
func (s *Session) Transactions() []models.TransactionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TransactionEntry, len(s.transactions))
	copy(out, s.transactions)
	for i := range out {
		out[i].SampleFiles = make([]models.FileRef, len(s.transactions[i].SampleFiles))
		copy(out[i].SampleFiles, s.transactions[i].SampleFiles)
		out[i].SystemDocFiles = make([]models.FileRef, len(s.transactions[i].SystemDocFiles))
		copy(out[i].SystemDocFiles, s.transactions[i].SystemDocFiles)
	}
	return out
}

// Payload assembles the submission payload from the current state.
func (s *Session) Payload() models.OnboardingPayload {
	return models.OnboardingPayload{
		Section1Data:         s.CompanyInfo(),
		SelectedTransactions: s.Transactions(),
	}
}

// Status returns the submission status and, when failed, the reason.
func (s *Session) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.failReason
}

// BeginSubmit moves the session into the submitting state. It returns false
// when a submission is already in flight, so the caller can reject re-entrant
// submits.
func (s *Session) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusSubmitting {
		return false
	}
	s.status = StatusSubmitting
	s.failReason = ""
	s.notify(Event{Op: "beginSubmit"})
	return true
}

// FinishSubmit records the final submission outcome.
func (s *Session) FinishSubmit(status Status, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.failReason = reason
	s.notify(Event{Op: "finishSubmit"})
}
