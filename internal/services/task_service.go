package services

import (
	"context"
	"fmt"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"
)

// TaskService is the staff to-do board.
type TaskService struct {
	Store     repositories.Store
	RequestID string
}

type TaskInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeIDs []int64    `json:"assignee_ids"`
}

type TaskDetail struct {
	models.Task
	Assignments []models.TaskAssignment `json:"assignments"`
	Comments    []models.TaskComment    `json:"comments"`
}

func (s TaskService) Create(ctx context.Context, actor domain.Actor, in TaskInput) (TaskDetail, error) {
	if err := requireStaff(actor); err != nil {
		return TaskDetail{}, err
	}
	title, err := requireText("title", in.Title)
	if err != nil {
		return TaskDetail{}, err
	}
	t := models.Task{
		Title:       title,
		Description: utils.TrimPtr(in.Description),
		Status:      models.TaskTodo,
		DueDate:     in.DueDate,
		CreatedBy:   actor.UserID,
	}
	out := TaskDetail{}
	err = s.Store.InTx(ctx, func(r repositories.Repos) error {
		if err := r.Tasks().Create(ctx, &t); err != nil {
			return err
		}
		out.Task = t
		for _, uid := range in.AssigneeIDs {
			a, err := assign(ctx, r, actor, t.ID, uid)
			if err != nil {
				return err
			}
			out.Assignments = append(out.Assignments, a)
		}
		return nil
	})
	if err != nil {
		utils.LogError(s.RequestID, "task", "create", err)
		return TaskDetail{}, err
	}
	utils.LogEvent(s.RequestID, "task", "create", fmt.Sprintf("task_id=%d by=%d", t.ID, actor.UserID))
	return out, nil
}

func (s TaskService) List(ctx context.Context, f models.TaskFilter) ([]models.Task, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ValidationError{Field: "status", Msg: "must be todo, in_progress or done"}
	}
	return s.Store.Tasks().List(ctx, f)
}

func (s TaskService) Get(ctx context.Context, id int64) (TaskDetail, error) {
	t, err := s.Store.Tasks().Get(ctx, id)
	if err != nil {
		return TaskDetail{}, err
	}
	assignments, err := s.Store.Tasks().ListAssignments(ctx, id)
	if err != nil {
		return TaskDetail{}, err
	}
	comments, err := s.Store.Tasks().ListComments(ctx, id)
	if err != nil {
		return TaskDetail{}, err
	}
	return TaskDetail{Task: t, Assignments: assignments, Comments: comments}, nil
}

func (s TaskService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status models.TaskStatus) (models.Task, error) {
	if err := requireStaff(actor); err != nil {
		return models.Task{}, err
	}
	if !status.Valid() {
		return models.Task{}, domain.ValidationError{Field: "status", Msg: "must be todo, in_progress or done"}
	}
	if err := s.Store.Tasks().UpdateStatus(ctx, id, status); err != nil {
		return models.Task{}, err
	}
	return s.Store.Tasks().Get(ctx, id)
}

func (s TaskService) Assign(ctx context.Context, actor domain.Actor, taskID, userID int64) (models.TaskAssignment, error) {
	if err := requireStaff(actor); err != nil {
		return models.TaskAssignment{}, err
	}
	if _, err := s.Store.Tasks().Get(ctx, taskID); err != nil {
		return models.TaskAssignment{}, err
	}
	return assign(ctx, s.Store, actor, taskID, userID)
}

func assign(ctx context.Context, r repositories.Repos, actor domain.Actor, taskID, userID int64) (models.TaskAssignment, error) {
	if err := requireID("user_id", userID); err != nil {
		return models.TaskAssignment{}, err
	}
	if _, err := r.Users().Get(ctx, userID); err != nil {
		return models.TaskAssignment{}, err
	}
	a := models.TaskAssignment{TaskID: taskID, UserID: userID, AssignedBy: actor.UserID}
	if err := r.Tasks().Assign(ctx, &a); err != nil {
		return models.TaskAssignment{}, err
	}
	return a, nil
}

func (s TaskService) Comment(ctx context.Context, actor domain.Actor, taskID int64, body string) (models.TaskComment, error) {
	body, err := requireText("body", body)
	if err != nil {
		return models.TaskComment{}, err
	}
	if _, err := s.Store.Tasks().Get(ctx, taskID); err != nil {
		return models.TaskComment{}, err
	}
	c := models.TaskComment{TaskID: taskID, UserID: actor.UserID, Author: actor.Label(), Body: body}
	if err := s.Store.Tasks().AddComment(ctx, &c); err != nil {
		return models.TaskComment{}, err
	}
	return c, nil
}
