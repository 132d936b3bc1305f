package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"listd/internal/apperr"
)

// pathID parses a uuid route parameter. Malformed ids are reported as
// NotFound, matching how unowned resources are reported.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.NotFound("not found")
	}
	return id, nil
}

func (a *API) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := a.store.TodosByOwner(r.Context(), callerID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, todos)
}

func (a *API) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	if fields := requireField(nil, "title", req.Title); len(fields) > 0 {
		respondError(w, apperr.Invalid(fields...))
		return
	}

	todo, err := a.store.CreateTodo(r.Context(), callerID(r.Context()), req.Title, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, todo)
}

func (a *API) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	todo, err := a.store.TodoByID(r.Context(), callerID(r.Context()), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

func (a *API) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	if fields := requireField(nil, "title", req.Title); len(fields) > 0 {
		respondError(w, apperr.Invalid(fields...))
		return
	}

	todo, err := a.store.UpdateTodo(r.Context(), callerID(r.Context()), id, req.Title, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

func (a *API) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	caller := callerID(r.Context())
	if err := a.store.DeleteTodo(r.Context(), caller, id); err != nil {
		respondError(w, err)
		return
	}

	a.audit(r.Context(), &caller, "todo.deleted", "todo", strPtr(id.String()), nil)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Todo deleted"})
}
