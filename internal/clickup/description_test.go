package clickup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edibridge/onboard/internal/models"
)

func samplePayload() models.OnboardingPayload {
	return models.OnboardingPayload{
		Section1Data: models.CompanyInfo{
			CompanyName:  "Acme Corp",
			ContactName:  "Jane Doe",
			ContactEmail: "jane@acme.example",
			ContactPhone: "555-0100",
			AutoAccepted: "yes",
		},
		SelectedTransactions: []models.TransactionEntry{
			{
				Type:                   "850 - Purchase Order",
				Direction:              "both",
				Frequency:              "daily",
				RequiredOptional:       "required",
				HasImplementationGuide: "yes",
				CanProvideSamples:      "no",
				HasMappingSpecs:        "",
				HasSystemDocs:          "yes",
				Require997FromUs:       "yes",
				WillSend997:            "no",
			},
		},
	}
}

func TestFormatTaskDescriptionGolden(t *testing.T) {
	want := `# EDI Vendor Onboarding Form Submission

## Company and Contact Information

**Company Name:** Acme Corp
**Contact Name:** Jane Doe
**Contact Email:** jane@acme.example
**Contact Phone:** 555-0100

## EDI Transaction Types & Details

### 1. 850 - Purchase Order

- **Direction:** Both directions
- **Frequency:** Daily
- **Required/Optional:** Required

**Documentation & Samples:**
- EDI Implementation Guide: ✅ Yes
- Sample EDI Files: ❌ No
- Data Mapping Specifications: *Not specified*
- Internal System Format Documentation: ✅ Yes

**Functional Acknowledgments (997):**
- Require 997 from us: ✅ Yes
- Will send 997 to us: ❌ No

`

	got := FormatTaskDescription(samplePayload())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("description mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTaskDescriptionDeterministic(t *testing.T) {
	payload := samplePayload()
	first := FormatTaskDescription(payload)
	second := FormatTaskDescription(payload)
	if first != second {
		t.Fatal("formatter output is not deterministic")
	}
}

func TestFormatTaskDescriptionUnmappedPassthrough(t *testing.T) {
	payload := samplePayload()
	payload.SelectedTransactions[0].Frequency = "every-full-moon"

	got := FormatTaskDescription(payload)
	if !strings.Contains(got, "- **Frequency:** every-full-moon\n") {
		t.Fatalf("unmapped code should pass through verbatim, got:\n%s", got)
	}
}

func TestFormatTaskDescriptionNoTransactions(t *testing.T) {
	payload := samplePayload()
	payload.SelectedTransactions = nil

	got := FormatTaskDescription(payload)
	if !strings.HasSuffix(got, "## EDI Transaction Types & Details\n\n*No transactions selected*\n") {
		t.Fatalf("unexpected empty-selection rendering:\n%s", got)
	}
}

func TestFormatTaskDescriptionPreservesSelectionOrder(t *testing.T) {
	payload := samplePayload()
	payload.SelectedTransactions = append(payload.SelectedTransactions,
		models.TransactionEntry{Type: "810 - Invoice"})

	got := FormatTaskDescription(payload)
	first := strings.Index(got, "### 1. 850 - Purchase Order")
	second := strings.Index(got, "### 2. 810 - Invoice")
	if first == -1 || second == -1 || second < first {
		t.Fatalf("selection order not preserved:\n%s", got)
	}
}
