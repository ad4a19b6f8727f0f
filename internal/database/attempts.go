package database

import (
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	"github.com/edibridge/onboard/internal/errl"
	"github.com/edibridge/onboard/internal/models"
)

// SubmissionAttempt is one recorded submission of the onboarding form,
// together with the outcome of both outbound integrations.
type SubmissionAttempt struct {
	ID           int64     `json:"id"`
	CompanyName  string    `json:"companyName"`
	ContactEmail string    `json:"contactEmail"`
	Status       string    `json:"status"`
	FailReason   string    `json:"failReason,omitempty"`
	APISuccess   bool      `json:"apiSuccess"`
	APIError     string    `json:"apiError,omitempty"`
	TaskID       string    `json:"taskId,omitempty"`
	TaskName     string    `json:"taskName,omitempty"`
	TaskURL      string    `json:"taskUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateSubmissionAttempt records one submission attempt with the full form
// payload as JSON.
func (d *Database) CreateSubmissionAttempt(attempt *SubmissionAttempt, payload models.OnboardingPayload) error {

	// Convert the form payload into JSON
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return errl.Errorf("failed to marshal form payload: %w", err)
	}

	query := `
		INSERT INTO submission_attempts (
			company_name,
			contact_email,
			status,
			fail_reason,
			api_success,
			api_error,
			task_id,
			task_name,
			task_url,
			payload,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, jsonb(?), ?)
	`

	apiSuccess := 0
	if attempt.APISuccess {
		apiSuccess = 1
	}

	res, err := d.db.Exec(query,
		attempt.CompanyName,
		attempt.ContactEmail,
		attempt.Status,
		attempt.FailReason,
		apiSuccess,
		attempt.APIError,
		attempt.TaskID,
		attempt.TaskName,
		attempt.TaskURL,
		payloadJSON,
		time.Now(),
	)
	if err != nil {
		return errl.Errorf("failed to record submission attempt for %s: %w", attempt.CompanyName, err)
	}

	attempt.ID, _ = res.LastInsertId()
	slog.Info("Recorded submission attempt",
		"company", attempt.CompanyName,
		"status", attempt.Status,
		"api_success", attempt.APISuccess,
		"task_id", attempt.TaskID)
	return nil
}

// GetSubmissionAttempt returns one attempt and its stored payload by id.
func (d *Database) GetSubmissionAttempt(id int64) (*SubmissionAttempt, *models.OnboardingPayload, error) {
	query := `
		SELECT id, company_name, contact_email, status, fail_reason,
		       api_success, api_error, task_id, task_name, task_url,
		       json(payload), created_at
		FROM submission_attempts
		WHERE id = ?
	`

	var a SubmissionAttempt
	var apiSuccess int
	var payloadJSON string
	err := d.db.QueryRow(query, id).Scan(
		&a.ID, &a.CompanyName, &a.ContactEmail, &a.Status, &a.FailReason,
		&apiSuccess, &a.APIError, &a.TaskID, &a.TaskName, &a.TaskURL,
		&payloadJSON, &a.CreatedAt,
	)
	if err != nil {
		return nil, nil, errl.Errorf("failed to get submission attempt %d: %w", id, err)
	}
	a.APISuccess = apiSuccess != 0

	var payload models.OnboardingPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return nil, nil, errl.Errorf("failed to unmarshal form payload: %w", err)
	}

	return &a, &payload, nil
}

// ListSubmissionAttempts returns the most recent attempts, newest first.
func (d *Database) ListSubmissionAttempts(limit int) ([]SubmissionAttempt, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, company_name, contact_email, status, fail_reason,
		       api_success, api_error, task_id, task_name, task_url, created_at
		FROM submission_attempts
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, errl.Errorf("failed to list submission attempts: %w", err)
	}
	defer rows.Close()

	var out []SubmissionAttempt
	for rows.Next() {
		var a SubmissionAttempt
		var apiSuccess int
		if err := rows.Scan(
			&a.ID, &a.CompanyName, &a.ContactEmail, &a.Status, &a.FailReason,
			&apiSuccess, &a.APIError, &a.TaskID, &a.TaskName, &a.TaskURL, &a.CreatedAt,
		); err != nil {
			return nil, errl.Errorf("failed to scan submission attempt: %w", err)
		}
		a.APISuccess = apiSuccess != 0
		out = append(out, a)
	}

	return out, rows.Err()
}
