package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SaiyamJain468/Paylockr/internal/jobs"
)

func TestQueue_PublishAndProcess(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, 2, store)
	defer q.Close()

	var mu sync.Mutex
	processed := make(map[string]bool)
	done := make(chan struct{}, 1)

	handler := func(ctx context.Context, job *jobs.NormalizeJob) error {
		mu.Lock()
		processed[job.JobID] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	job := &jobs.NormalizeJob{DocumentID: "doc-1", SourceURI: "gs://statements/jan.pdf"}
	if err := q.Publish(context.Background(), job); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if job.JobID == "" {
		t.Fatal("Publish() did not assign a job ID")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	mu.Lock()
	defer mu.Unlock()
	if !processed[job.JobID] {
		t.Errorf("job %s was not handled", job.JobID)
	}
}

func TestQueue_FailedJobRecordsError(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, 1, store)
	defer q.Close()

	done := make(chan struct{}, 1)
	handler := func(ctx context.Context, job *jobs.NormalizeJob) error {
		done <- struct{}{}
		return errors.New("extraction failed")
	}

	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	job := &jobs.NormalizeJob{DocumentID: "doc-2", SourceURI: "gs://statements/feb.pdf", MaxRetries: 1}
	if err := q.Publish(context.Background(), job); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	// Give processJob a moment to persist the post-run state.
	time.Sleep(100 * time.Millisecond)

	stored, err := store.Get(context.Background(), job.JobID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Error == "" {
		t.Error("stored job has no error message")
	}
	if stored.Status != jobs.StatusRetrying && stored.Status != jobs.StatusFailed && stored.Status != jobs.StatusPending && stored.Status != jobs.StatusRunning {
		t.Errorf("stored status = %q, want a failure-path status", stored.Status)
	}
}

func TestQueue_PublishAfterClose(t *testing.T) {
	q := NewQueue(1, 1, nil)
	if err := q.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	err := q.Publish(context.Background(), &jobs.NormalizeJob{DocumentID: "doc-3"})
	if err == nil {
		t.Fatal("Publish() after Close() error = nil, want error")
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	job := &jobs.NormalizeJob{JobID: "job-1", DocumentID: "doc-1", Status: jobs.StatusPending}
	if err := store.Save(ctx, job); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DocumentID != "doc-1" {
		t.Errorf("DocumentID = %q, want doc-1", got.DocumentID)
	}

	// Mutating the returned copy must not affect stored state.
	got.Status = jobs.StatusFailed
	again, _ := store.Get(ctx, "job-1")
	if again.Status != jobs.StatusPending {
		t.Errorf("stored status changed to %q after mutating a copy", again.Status)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore()
	if _, err := store.Get(context.Background(), "nope"); err == nil {
		t.Fatal("Get() on missing job error = nil, want error")
	}
}

func TestStore_ListFilters(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	seed := []*jobs.NormalizeJob{
		{JobID: "a", DocumentID: "doc-1", Status: jobs.StatusCompleted},
		{JobID: "b", DocumentID: "doc-1", Status: jobs.StatusFailed},
		{JobID: "c", DocumentID: "doc-2", Status: jobs.StatusCompleted},
	}
	for _, j := range seed {
		if err := store.Save(ctx, j); err != nil {
			t.Fatalf("Save(%s) error = %v", j.JobID, err)
		}
	}

	byDoc, err := store.List(ctx, jobs.Filter{DocumentID: "doc-1"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byDoc) != 2 {
		t.Errorf("List(doc-1) returned %d jobs, want 2", len(byDoc))
	}

	byStatus, err := store.List(ctx, jobs.Filter{Status: jobs.StatusCompleted})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byStatus) != 2 {
		t.Errorf("List(completed) returned %d jobs, want 2", len(byStatus))
	}

	limited, err := store.List(ctx, jobs.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("List(limit=1) returned %d jobs, want 1", len(limited))
	}
}
