package handlers

import (
	"net/http"

	"listd/internal/apperr"
	"listd/internal/sharing"
)

func (a *API) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvitedUserEmail string `json:"invitedUserEmail"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	if fields := requireEmail(nil, "invitedUserEmail", req.InvitedUserEmail); len(fields) > 0 {
		respondError(w, apperr.Invalid(fields...))
		return
	}

	caller := callerID(r.Context())
	inv, err := a.engine.Invite(r.Context(), caller, req.InvitedUserEmail)
	if err != nil {
		respondError(w, err)
		return
	}

	a.audit(r.Context(), &caller, "invitation.created", "invitation", strPtr(inv.ID.String()),
		map[string]any{"invitee_id": inv.InviteeID})
	respondJSON(w, http.StatusCreated, inv)
}

func (a *API) handleListInvites(w http.ResponseWriter, r *http.Request) {
	invs, err := a.engine.List(r.Context(), callerID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invs)
}

func (a *API) handleRespondInvite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	decision, err := sharing.ParseDecision(req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	caller := callerID(r.Context())
	inv, err := a.engine.Respond(r.Context(), caller, id, decision)
	if err != nil {
		respondError(w, err)
		return
	}

	if decision == sharing.DecisionRejected {
		a.audit(r.Context(), &caller, "invitation.rejected", "invitation", strPtr(id.String()), nil)
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Invitation rejected"})
		return
	}

	a.audit(r.Context(), &caller, "invitation.accepted", "invitation", strPtr(id.String()), nil)
	respondJSON(w, http.StatusOK, inv)
}

func (a *API) handleSharedTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := a.engine.SharedTodos(r.Context(), callerID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, todos)
}
