package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler handles the /tasks endpoints. Every route requires an
// authenticated caller and only ever touches that caller's tasks.
type TaskHandler struct {
	tasks  service.TaskService
	errors *ErrorResponder
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, errors *ErrorResponder, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		errors: errors,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks?page&limit&status&search.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	params, err := listParamsFromQuery(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	page, err := h.tasks.List(r.Context(), identity.ID, params)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(page))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	id, err := taskIDFromPath(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	task, err := h.tasks.Get(r.Context(), identity.ID, id)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	var req CreateTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	task, err := h.tasks.Create(r.Context(), identity.ID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PATCH /tasks/{id}. Only the fields present in the body
// change; an empty body returns the task as it is.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	id, err := taskIDFromPath(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	patch, err := req.Patch()
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	task, err := h.tasks.Update(r.Context(), identity.ID, id, patch)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ToggleTask handles PATCH /tasks/{id}/toggle.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	id, err := taskIDFromPath(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	task, err := h.tasks.Toggle(r.Context(), identity.ID, id)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}
	id, err := taskIDFromPath(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), identity.ID, id); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
