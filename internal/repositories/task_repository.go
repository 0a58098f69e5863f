package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
)

const taskColumns = `id, title, description, status, due_date, created_by, created_at, updated_at`

type TaskRepository struct {
	DB intdb.DBTX
}

func (r TaskRepository) Create(ctx context.Context, t *models.Task) error {
	ts := now()
	t.CreatedAt, t.UpdatedAt = ts, ts
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO tasks (title, description, status, due_date, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Status, t.DueDate, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	id, err := insertID(res, err, "task")
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r TaskRepository) Get(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	if err := r.DB.GetContext(ctx, &t, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id); err != nil {
		return models.Task{}, getErr(err, "task")
	}
	return t, nil
}

func (r TaskRepository) List(ctx context.Context, f models.TaskFilter) ([]models.Task, error) {
	where := []string{}
	args := []any{}
	if f.AssigneeID != nil {
		where = append(where, "id IN (SELECT task_id FROM task_assignments WHERE user_id = ?)")
		args = append(args, *f.AssigneeID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY due_date IS NULL, due_date, id"

	out := []models.Task{}
	if err := r.DB.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (r TaskRepository) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return intdb.RequireAffected(res, domain.NotFoundError{Resource: "task"})
}

func (r TaskRepository) Assign(ctx context.Context, a *models.TaskAssignment) error {
	a.AssignedAt = now()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO task_assignments (task_id, user_id, assigned_by, assigned_at) VALUES (?, ?, ?, ?)`,
		a.TaskID, a.UserID, a.AssignedBy, a.AssignedAt,
	)
	id, err := insertID(res, err, "task assignment")
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r TaskRepository) ListAssignments(ctx context.Context, taskID int64) ([]models.TaskAssignment, error) {
	out := []models.TaskAssignment{}
	err := r.DB.SelectContext(ctx, &out, `
		SELECT id, task_id, user_id, assigned_by, assigned_at
		FROM task_assignments WHERE task_id = ? ORDER BY assigned_at, id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list task assignments: %w", err)
	}
	return out, nil
}

func (r TaskRepository) AddComment(ctx context.Context, c *models.TaskComment) error {
	c.CreatedAt = now()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO task_comments (task_id, user_id, author, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.TaskID, c.UserID, c.Author, c.Body, c.CreatedAt,
	)
	id, err := insertID(res, err, "task comment")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r TaskRepository) ListComments(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	out := []models.TaskComment{}
	err := r.DB.SelectContext(ctx, &out, `
		SELECT id, task_id, user_id, author, body, created_at
		FROM task_comments WHERE task_id = ? ORDER BY created_at, id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list task comments: %w", err)
	}
	return out, nil
}
