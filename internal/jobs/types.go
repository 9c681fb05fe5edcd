package jobs

import (
	"context"
	"time"

	"github.com/SaiyamJain468/Paylockr/internal/normalize"
)

// Status represents the current lifecycle state of a job.
type Status string

const (
	// StatusPending indicates the job is waiting to be processed.
	StatusPending Status = "pending"
	// StatusRunning indicates the job is currently being processed.
	StatusRunning Status = "running"
	// StatusCompleted indicates the job completed successfully.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the job failed permanently.
	StatusFailed Status = "failed"
	// StatusRetrying indicates the job failed and will be retried.
	StatusRetrying Status = "retrying"
)

// NormalizeJob is an asynchronous request to normalize one stored document.
type NormalizeJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// DocumentID identifies the uploaded document.
	DocumentID string `json:"document_id"`

	// SourceURI is the storage URI of the document to normalize.
	SourceURI string `json:"source_uri"`

	// Status is the current status of the job.
	Status Status `json:"status"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// RetryCount is the number of times this job has been retried.
	RetryCount int `json:"retry_count"`

	// MaxRetries is the maximum number of retries allowed.
	MaxRetries int `json:"max_retries"`

	// Result holds the normalization output once the job completes.
	Result *normalize.Result `json:"result,omitempty"`
}

// Publisher defines the interface for publishing jobs to a queue.
// The abstraction allows swapping the in-memory queue for Cloud Tasks
// or Pub/Sub without touching the API layer.
type Publisher interface {
	// Publish enqueues a normalization job.
	Publish(ctx context.Context, job *NormalizeJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Handler is a function that processes a job. A returned error marks
// the attempt as failed and eligible for retry.
type Handler func(ctx context.Context, job *NormalizeJob) error

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs, invoking the handler for each one.
	Start(ctx context.Context, handler Handler) error

	// Stop stops consuming jobs and waits for in-flight jobs to finish.
	Stop(ctx context.Context) error
}

// Store defines the interface for tracking job state.
type Store interface {
	// Save saves or updates a job's state.
	Save(ctx context.Context, job *NormalizeJob) error

	// Get retrieves a job by ID.
	Get(ctx context.Context, jobID string) (*NormalizeJob, error)

	// List retrieves jobs matching the filter.
	List(ctx context.Context, filter Filter) ([]*NormalizeJob, error)
}

// Filter defines filtering criteria for listing jobs.
type Filter struct {
	// DocumentID filters jobs by document ID.
	DocumentID string

	// Status filters jobs by status.
	Status Status

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}
