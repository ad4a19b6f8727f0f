package catalog

import (
	"strings"
	"testing"
)

func TestCategoriesLoad(t *testing.T) {
	cats, err := Categories()
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(cats) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(cats))
	}

	if cats[0].Label != "Automotive" {
		t.Fatalf("unexpected first category: %q", cats[0].Label)
	}
	if cats[len(cats)-1].Label != "Transportation & Logistics" {
		t.Fatalf("unexpected last category: %q", cats[len(cats)-1].Label)
	}

	// Every category offers the free-form escape hatch as its last option
	for _, c := range cats {
		if len(c.Options) == 0 {
			t.Fatalf("category %q has no options", c.Label)
		}
		last := c.Options[len(c.Options)-1]
		if !strings.HasPrefix(last, "OTHER - ") {
			t.Fatalf("category %q should end with the OTHER option, got %q", c.Label, last)
		}
	}
}

func TestContains(t *testing.T) {
	if !Contains("850 - Purchase Order") {
		t.Fatal("850 should be in the catalog")
	}
	if Contains("997 - Functional Acknowledgment") {
		t.Fatal("997 is not an offered transaction type")
	}
	if Contains("") {
		t.Fatal("empty code should not match")
	}
}
