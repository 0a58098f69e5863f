package handlers

import (
	"net/http"

	"flightschool/internal/domain/models"
	"flightschool/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/tasks?assignee_id=3&status=todo
func (h *Handlers) ListTasks(c *gin.Context) {
	var f models.TaskFilter
	var ok bool
	if f.AssigneeID, ok = queryID(c, "assignee_id"); !ok {
		return
	}
	f.Status = models.TaskStatus(c.Query("status"))
	list, err := h.taskService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := h.taskService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handlers) CreateTask(c *gin.Context) {
	var in services.TaskInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := h.taskService(c).Create(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handlers) UpdateTaskStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p statusPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	t, err := h.taskService(c).UpdateStatus(c.Request.Context(), actor(c), id, models.TaskStatus(p.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

type assignPayload struct {
	UserID int64 `json:"user_id"`
}

func (h *Handlers) AssignTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p assignPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	a, err := h.taskService(c).Assign(c.Request.Context(), actor(c), id, p.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handlers) CommentTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p commentPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	cm, err := h.taskService(c).Comment(c.Request.Context(), actor(c), id, p.Text)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}
