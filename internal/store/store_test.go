package store

import (
	"testing"
)

func TestTaskStatusValues(t *testing.T) {
	statuses := []TaskStatus{StatusOpen, StatusInProgress, StatusScheduled, StatusDone}
	expected := []string{"open", "in_progress", "scheduled", "done"}
	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestBucketValues(t *testing.T) {
	buckets := []Bucket{BucketToday, BucketThisWeek, BucketLater, BucketBacklog}
	expected := []string{"today", "this_week", "later", "backlog"}
	for i, b := range buckets {
		if string(b) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], b)
		}
	}
}

func TestTaskFilterDefaults(t *testing.T) {
	f := TaskFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Status != nil {
		t.Error("expected nil status filter")
	}
	if f.Bucket != nil {
		t.Error("expected nil bucket filter")
	}
	if f.Area != "" {
		t.Error("expected empty area filter")
	}
}

func TestTaskOptionalFieldsDefaultNil(t *testing.T) {
	task := Task{Title: "bare"}
	if task.DueDate != nil || task.EstimatedMinutes != nil {
		t.Error("expected nil planning fields on bare task")
	}
	if task.LeverageScore != nil || task.UrgencyScore != nil ||
		task.RiskScore != nil || task.FrictionScore != nil {
		t.Error("expected nil score overrides on bare task")
	}
}
