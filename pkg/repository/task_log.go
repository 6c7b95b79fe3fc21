package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/mpdigest/pkg/domain"
)

// TaskLogRepository handles batch run log operations
type TaskLogRepository struct {
	db *sqlx.DB
}

// taskLogSQL is the database representation of a task log entry
type taskLogSQL struct {
	ID         int64      `db:"id"`
	Kind       string     `db:"kind"`
	Status     string     `db:"status"`
	Total      int        `db:"total"`
	Success    int        `db:"success"`
	Failed     int        `db:"failed"`
	Message    string     `db:"message"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

// NewTaskLogRepository creates a new task log repository
func NewTaskLogRepository(db *sqlx.DB) *TaskLogRepository {
	return &TaskLogRepository{db: db}
}

// StartTask records a running task and returns its id
func (r *TaskLogRepository) StartTask(ctx context.Context, kind string, total int) (int64, error) {
	query := `INSERT INTO task_logs (kind, status, total) VALUES (?, ?, ?) RETURNING id`
	var id int64
	err := withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &id, query, kind, string(domain.TaskRunning), total)
	})
	if err != nil {
		return 0, fmt.Errorf("start task %s: %w", kind, err)
	}
	return id, nil
}

// FinishTask records the final status and counts of a task
func (r *TaskLogRepository) FinishTask(ctx context.Context, id int64, status domain.TaskStatus, success, failed int, message string) error {
	query := `
		UPDATE task_logs
		SET status = ?, success = ?, failed = ?, message = ?, finished_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, string(status), success, failed, message, id)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("task %d not found", id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("finish task %d: %w", id, err)
	}
	return nil
}

// RecentTasks returns the latest task log entries, newest first
func (r *TaskLogRepository) RecentTasks(ctx context.Context, limit int) ([]domain.TaskLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []taskLogSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM task_logs ORDER BY started_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("get recent tasks: %w", err)
	}

	res := make([]domain.TaskLog, len(rows))
	for i, t := range rows {
		res[i] = domain.TaskLog{
			ID:         t.ID,
			Kind:       t.Kind,
			Status:     domain.TaskStatus(t.Status),
			Total:      t.Total,
			Success:    t.Success,
			Failed:     t.Failed,
			Message:    t.Message,
			StartedAt:  t.StartedAt,
			FinishedAt: t.FinishedAt,
		}
	}
	return res, nil
}
