package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Values for the yes/no questions on the form. The empty string means the
// user has not answered yet.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Direction values for a transaction.
const (
	DirectionYouToUs = "you-to-us"
	DirectionUsToYou = "us-to-you"
	DirectionBoth    = "both"
)

// Frequency values for a transaction.
const (
	FrequencyRealTime = "real-time"
	FrequencyHourly   = "hourly"
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyMonthly  = "monthly"
	FrequencyOnDemand = "on-demand"
)

// Required/optional values for a transaction.
const (
	RequirementRequired = "required"
	RequirementOptional = "optional"
)

// CompanyInfo is the data collected in Section 1 of the onboarding form.
type CompanyInfo struct {
	CompanyName  string `form:"companyName" json:"companyName"`
	ContactName  string `form:"contactName" json:"contactName"`
	ContactEmail string `form:"contactEmail" json:"contactEmail"`
	ContactPhone string `form:"contactPhone" json:"contactPhone"`
	AutoAccepted string `form:"autoAccepted" json:"autoAccepted"`
}

// Complete reports whether all five Section 1 fields are non-empty after
// trimming whitespace. This is the gate for advancing to Section 2.
func (c CompanyInfo) Complete() bool {
	t := CompanyInfo{
		CompanyName:  strings.TrimSpace(c.CompanyName),
		ContactName:  strings.TrimSpace(c.ContactName),
		ContactEmail: strings.TrimSpace(c.ContactEmail),
		ContactPhone: strings.TrimSpace(c.ContactPhone),
		AutoAccepted: strings.TrimSpace(c.AutoAccepted),
	}
	err := validation.ValidateStruct(&t,
		validation.Field(&t.CompanyName, validation.Required),
		validation.Field(&t.ContactName, validation.Required),
		validation.Field(&t.ContactEmail, validation.Required),
		validation.Field(&t.ContactPhone, validation.Required),
		validation.Field(&t.AutoAccepted, validation.Required),
	)
	return err == nil
}

// FileRef references an uploaded file by name and size. Only metadata is
// kept: the bytes themselves are never stored or forwarded.
type FileRef struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Handle string `json:"handle"`
}

// TransactionEntry holds the per-transaction configuration for one selected
// EDI transaction type.
type TransactionEntry struct {
	Type                   string    `form:"type" json:"type"`
	Direction              string    `form:"direction" json:"direction"`
	Frequency              string    `form:"frequency" json:"frequency"`
	RequiredOptional       string    `form:"requiredOptional" json:"requiredOptional"`
	HasImplementationGuide string    `form:"hasImplementationGuide" json:"hasImplementationGuide"`
	CanProvideSamples      string    `form:"canProvideSamples" json:"canProvideSamples"`
	SampleFiles            []FileRef `json:"sampleFiles"`
	HasMappingSpecs        string    `form:"hasMappingSpecs" json:"hasMappingSpecs"`
	HasSystemDocs          string    `form:"hasSystemDocs" json:"hasSystemDocs"`
	SystemDocFiles         []FileRef `json:"systemDocFiles"`
	Require997FromUs       string    `form:"require997FromUs" json:"require997FromUs"`
	WillSend997            string    `form:"willSend997" json:"willSend997"`
}

// NewTransactionEntry returns an entry for the given type with every question
// unanswered and empty file lists.
func NewTransactionEntry(typeCode string) TransactionEntry {
	return TransactionEntry{
		Type:           typeCode,
		SampleFiles:    []FileRef{},
		SystemDocFiles: []FileRef{},
	}
}

var yesNoRule = validation.In("", AnswerYes, AnswerNo)

// Validate checks the enum fields against their allowed values. The form UI
// only ever offers valid options, so a failure here is diagnostic only.
func (t TransactionEntry) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Type, validation.Required),
		validation.Field(&t.Direction, validation.In("", DirectionYouToUs, DirectionUsToYou, DirectionBoth)),
		validation.Field(&t.Frequency, validation.In("", FrequencyRealTime, FrequencyHourly,
			FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOnDemand)),
		validation.Field(&t.RequiredOptional, validation.In("", RequirementRequired, RequirementOptional)),
		validation.Field(&t.HasImplementationGuide, yesNoRule),
		validation.Field(&t.CanProvideSamples, yesNoRule),
		validation.Field(&t.HasMappingSpecs, yesNoRule),
		validation.Field(&t.HasSystemDocs, yesNoRule),
		validation.Field(&t.Require997FromUs, yesNoRule),
		validation.Field(&t.WillSend997, yesNoRule),
	)
}

// OnboardingPayload is the body posted to the onboarding API and the input
// of the task description formatter.
type OnboardingPayload struct {
	Section1Data         CompanyInfo        `json:"section1Data"`
	SelectedTransactions []TransactionEntry `json:"selectedTransactions"`
}
