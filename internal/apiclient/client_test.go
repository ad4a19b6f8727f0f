package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/edibridge/onboard/internal/models"
)

func payload() models.OnboardingPayload {
	return models.OnboardingPayload{
		Section1Data: models.CompanyInfo{
			CompanyName:  "Acme Corp",
			ContactName:  "Jane Doe",
			ContactEmail: "jane@acme.example",
			ContactPhone: "555-0100",
			AutoAccepted: "no",
		},
		SelectedTransactions: []models.TransactionEntry{
			{Type: "850 - Purchase Order", Direction: "both"},
		},
	}
}

func TestSubmitOnboarding(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method

		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("invalid request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"onb-1"}`))
	}))
	defer srv.Close()

	client, err := NewClient(&Config{BaseURL: srv.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	res := client.SubmitOnboarding(context.Background(), payload())
	if !res.Success {
		t.Fatalf("expected success, got: %+v", res)
	}
	if res.Message != "Form submitted successfully" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	if gotMethod != http.MethodPost || gotPath != "/onboarding" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	// The primary API uses a Bearer credential, unlike the task tracker
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if _, ok := gotBody["section1Data"]; !ok {
		t.Fatalf("body missing section1Data: %v", gotBody)
	}
	if _, ok := gotBody["selectedTransactions"]; !ok {
		t.Fatalf("body missing selectedTransactions: %v", gotBody)
	}
}

func TestSubmitOnboardingNoKeyNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(&Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	client.SubmitOnboarding(context.Background(), payload())

	if gotAuth != "" {
		t.Fatalf("no Authorization header expected without a key, got %q", gotAuth)
	}
}

func TestSubmitOnboardingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	client, err := NewClient(&Config{BaseURL: srv.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	// Failures are folded into the result, never returned as an error
	res := client.SubmitOnboarding(context.Background(), payload())
	if res.Success {
		t.Fatal("expected failure result on 500")
	}
	if !strings.Contains(res.Error, "boom") {
		t.Fatalf("expected server body in result error, got: %q", res.Error)
	}
	if res.Message != "Failed to submit form" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestSubmitOnboardingTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client, err := NewClient(&Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	res := client.SubmitOnboarding(context.Background(), payload())
	if res.Success || res.Error == "" {
		t.Fatalf("expected failure result with error, got: %+v", res)
	}
}

func TestAncillaryEndpoints(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(&Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	ctx := context.Background()
	client.TestConnection(ctx)
	client.GetTransactionTypes(ctx)
	client.ValidateCompany(ctx, payload().Section1Data)
	client.GetOnboarding(ctx, "onb-1")
	client.UpdateOnboarding(ctx, "onb-1", payload())

	want := []string{
		"GET /health",
		"GET /transaction-types",
		"POST /validate/company",
		"GET /onboarding/onb-1",
		"PUT /onboarding/onb-1",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d requests, got %v", len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("request %d: want %q, got %q", i, want[i], paths[i])
		}
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(&Config{}); err == nil {
		t.Fatal("expected error without base URL")
	}
	if _, err := NewClient(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
