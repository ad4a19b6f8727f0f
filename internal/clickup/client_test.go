package clickup

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/google/go-cmp/cmp"
)

func TestCreateTask(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("invalid request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc123","name":"Acme Corp","url":"https://app.clickup.example/t/abc123"}`))
	}))
	defer srv.Close()

	client, err := NewClient(&Config{BaseURL: srv.URL, ListID: "42", Token: "pk_token"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	task, err := client.CreateTask(context.Background(), samplePayload())
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	// The token goes out raw, without the Bearer prefix
	if gotAuth != "pk_token" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if gotPath != "/list/42/task" {
		t.Fatalf("unexpected path: %q", gotPath)
	}

	if task.ID != "abc123" || task.Name != "Acme Corp" {
		t.Fatalf("unexpected task: %+v", task)
	}

	if gotBody["name"] != "Acme Corp" {
		t.Fatalf("task name should be the company name, got %v", gotBody["name"])
	}
	if gotBody["status"] != "to do" || gotBody["priority"] != float64(3) {
		t.Fatalf("unexpected fixed attributes: %v %v", gotBody["status"], gotBody["priority"])
	}
	wantTags := []any{"edi-onboarding", "vendor"}
	if diff := cmp.Diff(wantTags, gotBody["tags"]); diff != "" {
		t.Fatalf("unexpected tags (-want +got):\n%s", diff)
	}
	desc, _ := gotBody["description"].(string)
	if !strings.HasPrefix(desc, "# EDI Vendor Onboarding Form Submission") {
		t.Fatalf("unexpected description: %q", desc)
	}
}

func TestCreateTaskServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"err":"Token invalid","ECODE":"OAUTH_025"}`))
	}))
	defer srv.Close()

	client, err := NewClient(&Config{BaseURL: srv.URL, ListID: "42", Token: "bad"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.CreateTask(context.Background(), samplePayload())
	if err == nil {
		t.Fatal("expected error on non-2xx response")
	}
	if !strings.Contains(err.Error(), "Token invalid") {
		t.Fatalf("expected the service error message, got: %v", err)
	}
}

func TestCreateTaskGenericStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{BaseURL: srv.URL, ListID: "42", Token: "tok"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.CreateTask(context.Background(), samplePayload())
	if err == nil || !strings.Contains(err.Error(), "HTTP 502") {
		t.Fatalf("expected generic status message, got: %v", err)
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(&Config{ListID: "42"}); err == nil {
		t.Fatal("expected error without token")
	}
	if _, err := NewClient(&Config{Token: "tok"}); err == nil {
		t.Fatal("expected error without list id")
	}
}
