package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const taskColumns = `task_id, title, description, area,
	status, bucket,
	priority, due_date, estimated_minutes,
	leverage_score, urgency_score, risk_score, friction_score,
	source,
	created_at, updated_at`

const insertTaskSQL = `
	INSERT INTO triage_tasks (title, description, area, status, bucket,
		priority, due_date, estimated_minutes,
		leverage_score, urgency_score, risk_score, friction_score,
		source)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING task_id, created_at, updated_at`

func (s *PostgresStore) CreateTask(ctx context.Context, task *Task) error {
	return s.pool.QueryRow(ctx, insertTaskSQL,
		task.Title, task.Description, task.Area, task.Status, task.Bucket,
		task.Priority, task.DueDate, task.EstimatedMinutes,
		task.LeverageScore, task.UrgencyScore, task.RiskScore, task.FrictionScore,
		task.Source,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (s *PostgresStore) CreateTasks(ctx context.Context, tasks []*Task) error {
	if len(tasks) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, task := range tasks {
		err := tx.QueryRow(ctx, insertTaskSQL,
			task.Title, task.Description, task.Area, task.Status, task.Bucket,
			task.Priority, task.DueDate, task.EstimatedMinutes,
			task.LeverageScore, task.UrgencyScore, task.RiskScore, task.FrictionScore,
			task.Source,
		).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert task %q: %w", task.Title, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM triage_tasks WHERE task_id = $1`, id)
	t, err := scanTask(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PostgresStore) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM triage_tasks WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Status != nil {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, string(*filter.Status))
	}
	if filter.Bucket != nil {
		n++
		query += fmt.Sprintf(" AND bucket = $%d", n)
		args = append(args, string(*filter.Bucket))
	}
	if filter.Area != "" {
		n++
		query += fmt.Sprintf(" AND area = $%d", n)
		args = append(args, filter.Area)
	}

	// Fetch in insertion order; the ranker owns presentation order.
	query += " ORDER BY created_at ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (s *PostgresStore) UpdateTask(ctx context.Context, task *Task) error {
	return s.pool.QueryRow(ctx, `
		UPDATE triage_tasks SET
			title = $2, description = $3, area = $4,
			status = $5, bucket = $6,
			priority = $7, due_date = $8, estimated_minutes = $9,
			leverage_score = $10, urgency_score = $11, risk_score = $12, friction_score = $13,
			updated_at = now()
		WHERE task_id = $1
		RETURNING updated_at`,
		task.ID, task.Title, task.Description, task.Area,
		task.Status, task.Bucket,
		task.Priority, task.DueDate, task.EstimatedMinutes,
		task.LeverageScore, task.UrgencyScore, task.RiskScore, task.FrictionScore,
	).Scan(&task.UpdatedAt)
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM triage_tasks WHERE task_id = $1`, id)
	return err
}

func (s *PostgresStore) GetStats(ctx context.Context) (*TaskStats, error) {
	stats := &TaskStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'open' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'scheduled' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status != 'done' AND due_date IS NOT NULL AND due_date <= now() + interval '24 hours' THEN 1 ELSE 0 END), 0)
		FROM triage_tasks`,
	).Scan(&stats.TotalOpen, &stats.TotalInProgress, &stats.TotalScheduled, &stats.TotalDone, &stats.DueWithin24h)
	return stats, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var description, area, source sql.NullString
	err := row.Scan(
		&t.ID, &t.Title, &description, &area,
		&t.Status, &t.Bucket,
		&t.Priority, &t.DueDate, &t.EstimatedMinutes,
		&t.LeverageScore, &t.UrgencyScore, &t.RiskScore, &t.FrictionScore,
		&source,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = description.String
	}
	if area.Valid {
		t.Area = area.String
	}
	if source.Valid {
		t.Source = source.String
	}
	return t, nil
}

func scanTasks(rows pgx.Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
