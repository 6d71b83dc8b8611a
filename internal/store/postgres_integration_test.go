//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE triage_tasks CASCADE")
		s.Close()
	})

	return s
}

func intPtr(v int) *int { return &v }

func TestCreateAndGetTask(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	due := time.Now().Add(48 * time.Hour).Truncate(time.Microsecond)
	task := &Task{
		Title:            "Integration Test Task",
		Description:      "Verify create and get round-trip",
		Area:             "home",
		Status:           StatusOpen,
		Bucket:           BucketThisWeek,
		Priority:         2,
		DueDate:          &due,
		EstimatedMinutes: intPtr(30),
		FrictionScore:    intPtr(4),
		Source:           "manual",
	}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected generated task id")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps set")
	}

	got, err := s.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected task, got nil")
	}
	if got.Title != task.Title || got.Area != task.Area {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.Bucket != BucketThisWeek || got.Priority != 2 {
		t.Errorf("workflow fields mismatch: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date mismatch: %v", got.DueDate)
	}
	if got.FrictionScore == nil || *got.FrictionScore != 4 {
		t.Errorf("friction override mismatch: %v", got.FrictionScore)
	}
	if got.LeverageScore != nil {
		t.Errorf("expected nil leverage override, got %v", got.LeverageScore)
	}
}

func TestGetTaskMissing(t *testing.T) {
	s := setupTestDB(t)

	got, err := s.GetTask(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing task, got %+v", got)
	}
}

func TestUpdateTaskBumpsUpdatedAt(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Title: "Update me", Status: StatusOpen, Bucket: BucketLater, Priority: 3}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	before := task.UpdatedAt

	task.Title = "Updated"
	task.Status = StatusDone
	if err := s.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if !task.UpdatedAt.After(before) {
		t.Errorf("expected updated_at to advance: before=%v after=%v", before, task.UpdatedAt)
	}

	got, _ := s.GetTask(ctx, task.ID)
	if got.Title != "Updated" || got.Status != StatusDone {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestCreateTasksAtomic(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	// Second row violates the status CHECK constraint, so the whole batch
	// must roll back.
	tasks := []*Task{
		{Title: "First of batch", Status: StatusOpen, Bucket: BucketLater, Priority: 3},
		{Title: "Second of batch", Status: TaskStatus("nonsense"), Bucket: BucketLater, Priority: 3},
	}
	if err := s.CreateTasks(ctx, tasks); err == nil {
		t.Fatal("expected batch insert to fail on invalid status")
	}

	listed, err := s.ListTasks(ctx, TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected empty table after failed batch, got %d rows", len(listed))
	}
}

func TestListTasksFilters(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	seed := []*Task{
		{Title: "a", Status: StatusOpen, Bucket: BucketToday, Area: "work", Priority: 1},
		{Title: "b", Status: StatusDone, Bucket: BucketToday, Area: "work", Priority: 2},
		{Title: "c", Status: StatusOpen, Bucket: BucketLater, Area: "home", Priority: 3},
	}
	if err := s.CreateTasks(ctx, seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	open := StatusOpen
	got, err := s.ListTasks(ctx, TaskFilter{Status: &open})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 open tasks, got %d", len(got))
	}

	today := BucketToday
	got, _ = s.ListTasks(ctx, TaskFilter{Bucket: &today})
	if len(got) != 2 {
		t.Errorf("expected 2 today tasks, got %d", len(got))
	}

	got, _ = s.ListTasks(ctx, TaskFilter{Area: "home"})
	if len(got) != 1 || got[0].Title != "c" {
		t.Errorf("expected single home task, got %v", got)
	}
}

func TestDeleteTask(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Title: "Delete me", Status: StatusOpen, Bucket: BucketLater, Priority: 3}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := s.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	got, _ := s.GetTask(ctx, task.ID)
	if got != nil {
		t.Error("expected task gone after delete")
	}
}

func TestGetStats(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	due := time.Now().Add(time.Hour)
	seed := []*Task{
		{Title: "open", Status: StatusOpen, Bucket: BucketToday, Priority: 3, DueDate: &due},
		{Title: "done", Status: StatusDone, Bucket: BucketToday, Priority: 3},
	}
	if err := s.CreateTasks(ctx, seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalOpen != 1 || stats.TotalDone != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.DueWithin24h != 1 {
		t.Errorf("expected 1 due soon, got %d", stats.DueWithin24h)
	}
}
