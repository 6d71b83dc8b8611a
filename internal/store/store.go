package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusScheduled  TaskStatus = "scheduled"
	StatusDone       TaskStatus = "done"
)

type Bucket string

const (
	BucketToday    Bucket = "today"
	BucketThisWeek Bucket = "this_week"
	BucketLater    Bucket = "later"
	BucketBacklog  Bucket = "backlog"
)

type Task struct {
	ID          uuid.UUID `json:"task_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Area        string    `json:"area,omitempty"`

	// Workflow
	Status TaskStatus `json:"status"`
	Bucket Bucket     `json:"bucket"`

	// Planning
	Priority         int        `json:"priority"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`

	// Score overrides. A nil field means the calculator infers the sub-score.
	// Computed scores are never written back; they are derived on every read.
	LeverageScore *int `json:"leverage_score,omitempty"`
	UrgencyScore  *int `json:"urgency_score,omitempty"`
	RiskScore     *int `json:"risk_score,omitempty"`
	FrictionScore *int `json:"friction_score,omitempty"`

	// Metadata
	Source string `json:"source,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskFilter struct {
	Status *TaskStatus
	Bucket *Bucket
	Area   string
	Limit  int
	Offset int
}

type TaskStats struct {
	TotalOpen       int `json:"total_open"`
	TotalInProgress int `json:"total_in_progress"`
	TotalScheduled  int `json:"total_scheduled"`
	TotalDone       int `json:"total_done"`
	DueWithin24h    int `json:"due_within_24h"`
}

type Store interface {
	CreateTask(ctx context.Context, task *Task) error
	// CreateTasks inserts all tasks in a single transaction. A failure on any
	// row leaves nothing behind; brain-dump batches are all-or-nothing.
	CreateTasks(ctx context.Context, tasks []*Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error

	GetStats(ctx context.Context) (*TaskStats, error)

	Close() error
}
