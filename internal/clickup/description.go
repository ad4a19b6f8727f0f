package clickup

import (
	"fmt"
	"strings"

	"github.com/edibridge/onboard/internal/models"
)

// valueLabels translates the form's enum codes into the wording used in the
// task description. Codes without an entry pass through verbatim, so a new
// frequency code shows up raw instead of being dropped.
var valueLabels = map[string]string{
	"you-to-us": "You send to us",
	"us-to-you": "We send to you",
	"both":      "Both directions",
	"real-time": "Real-time",
	"hourly":    "Hourly",
	"daily":     "Daily",
	"weekly":    "Weekly",
	"monthly":   "Monthly",
	"on-demand": "On-demand",
	"required":  "Required",
	"optional":  "Optional",
}

const notSpecified = "*Not specified*"

// FormatTaskDescription renders the submitted form into the multi-section
// markdown body of the follow-up task. It is deterministic and preserves the
// selection order of the transactions.
func FormatTaskDescription(payload models.OnboardingPayload) string {
	var b strings.Builder

	b.WriteString("# EDI Vendor Onboarding Form Submission\n\n")

	b.WriteString("## Company and Contact Information\n\n")
	fmt.Fprintf(&b, "**Company Name:** %s\n", payload.Section1Data.CompanyName)
	fmt.Fprintf(&b, "**Contact Name:** %s\n", payload.Section1Data.ContactName)
	fmt.Fprintf(&b, "**Contact Email:** %s\n", payload.Section1Data.ContactEmail)
	fmt.Fprintf(&b, "**Contact Phone:** %s\n\n", payload.Section1Data.ContactPhone)

	b.WriteString("## EDI Transaction Types & Details\n\n")

	if len(payload.SelectedTransactions) == 0 {
		b.WriteString("*No transactions selected*\n")
		return b.String()
	}

	for i, tx := range payload.SelectedTransactions {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, tx.Type)
		fmt.Fprintf(&b, "- **Direction:** %s\n", formatValue(tx.Direction))
		fmt.Fprintf(&b, "- **Frequency:** %s\n", formatValue(tx.Frequency))
		fmt.Fprintf(&b, "- **Required/Optional:** %s\n\n", formatValue(tx.RequiredOptional))

		b.WriteString("**Documentation & Samples:**\n")
		fmt.Fprintf(&b, "- EDI Implementation Guide: %s\n", formatYesNo(tx.HasImplementationGuide))
		fmt.Fprintf(&b, "- Sample EDI Files: %s\n", formatYesNo(tx.CanProvideSamples))
		fmt.Fprintf(&b, "- Data Mapping Specifications: %s\n", formatYesNo(tx.HasMappingSpecs))
		fmt.Fprintf(&b, "- Internal System Format Documentation: %s\n\n", formatYesNo(tx.HasSystemDocs))

		b.WriteString("**Functional Acknowledgments (997):**\n")
		fmt.Fprintf(&b, "- Require 997 from us: %s\n", formatYesNo(tx.Require997FromUs))
		fmt.Fprintf(&b, "- Will send 997 to us: %s\n\n", formatYesNo(tx.WillSend997))
	}

	return b.String()
}

func formatValue(value string) string {
	if value == "" {
		return notSpecified
	}
	if label, ok := valueLabels[value]; ok {
		return label
	}
	return value
}

func formatYesNo(value string) string {
	if value == "" {
		return notSpecified
	}
	if value == models.AnswerYes {
		return "✅ Yes"
	}
	return "❌ No"
}
