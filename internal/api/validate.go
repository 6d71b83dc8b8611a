package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Triage/internal/oracle"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

// Boundary validation. Invalid field defects are handled here so the scoring
// core never sees them: titles must survive trimming, priority is clamped,
// status and bucket are normalized to the closed sets, and due dates must
// parse or the request is rejected.

var validStatuses = map[store.TaskStatus]bool{
	store.StatusOpen:       true,
	store.StatusInProgress: true,
	store.StatusScheduled:  true,
	store.StatusDone:       true,
}

var validBuckets = map[store.Bucket]bool{
	store.BucketToday:    true,
	store.BucketThisWeek: true,
	store.BucketLater:    true,
	store.BucketBacklog:  true,
}

// normalizeStatus maps input to the canonical status set. "doing" survives as
// an alias from older clients. Unrecognized values fall back to open.
func normalizeStatus(s string) store.TaskStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "doing":
		return store.StatusInProgress
	case "":
		return store.StatusOpen
	}
	status := store.TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if validStatuses[status] {
		return status
	}
	return store.StatusOpen
}

// normalizeBucket maps input to the canonical bucket set, falling back to the
// caller-supplied default. The fallback is explicit per call site.
func normalizeBucket(s string, fallback store.Bucket) store.Bucket {
	bucket := store.Bucket(strings.ToLower(strings.TrimSpace(s)))
	if validBuckets[bucket] {
		return bucket
	}
	return fallback
}

// clampPriority applies the [1,5] clamp with default 3 for absent (zero).
func clampPriority(p int) int {
	if p == 0 {
		return 3
	}
	if p < 1 {
		return 1
	}
	if p > 5 {
		return 5
	}
	return p
}

// parseDueDate rejects unparseable due dates at the boundary; the core only
// ever sees a valid instant or nil.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("due_date must be RFC3339: %w", err)
	}
	return &t, nil
}

// candidateToTask validates one brain-dump candidate into a storable task.
// Candidates follow the exact same rules as manual creates.
func candidateToTask(c oracle.TaskCandidate) (*store.Task, error) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return nil, fmt.Errorf("candidate title is empty")
	}
	due, err := parseDueDate(c.DueDate)
	if err != nil {
		return nil, fmt.Errorf("candidate %q: %w", title, err)
	}
	return &store.Task{
		Title:       title,
		Description: c.Description,
		Area:        c.Area,
		Status:      store.StatusOpen,
		Bucket:      normalizeBucket(c.Bucket, store.BucketLater),
		Priority:    clampPriority(c.Priority),
		DueDate:     due,
		Source:      "braindump",
	}, nil
}
