package handlers

import (
	"net/http"
	"strings"

	"listd/internal/apperr"
)

func (a *API) handleListTasks(w http.ResponseWriter, r *http.Request) {
	todoID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := a.store.TasksForTodo(r.Context(), callerID(r.Context()), todoID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (a *API) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	todoID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Content   string `json:"content"`
		Completed bool   `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	if fields := requireField(nil, "content", req.Content); len(fields) > 0 {
		respondError(w, apperr.Invalid(fields...))
		return
	}

	task, err := a.store.CreateTask(r.Context(), callerID(r.Context()), todoID, req.Content, req.Completed)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (a *API) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Content   *string `json:"content"`
		Completed *bool   `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		respondError(w, apperr.Invalid(apperr.FieldError{
			Code:    "required",
			Field:   "content",
			Message: "content must not be empty",
		}))
		return
	}

	task, err := a.store.UpdateTask(r.Context(), callerID(r.Context()), id, req.Content, req.Completed)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (a *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := a.store.DeleteTask(r.Context(), callerID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Task deleted"})
}
