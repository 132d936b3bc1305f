package handlers

import (
	"net/http"

	"listd/internal/apperr"
	"listd/internal/password"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}

	var fields []apperr.FieldError
	fields = requireEmail(fields, "email", req.Email)
	fields = requirePassword(fields, "password", req.Password)
	if len(fields) > 0 {
		respondError(w, apperr.Invalid(fields...))
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		respondError(w, apperr.Internal(err))
		return
	}

	user, err := a.store.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.tokens.Issue(user.ID)
	if err != nil {
		respondError(w, apperr.Internal(err))
		return
	}

	a.audit(r.Context(), &user.ID, "user.registered", "user", strPtr(user.ID.String()), nil)
	respondJSON(w, http.StatusCreated, pair)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}

	var fields []apperr.FieldError
	fields = requireField(fields, "email", req.Email)
	fields = requireField(fields, "password", req.Password)
	if len(fields) > 0 {
		respondError(w, apperr.Invalid(fields...))
		return
	}

	// Lookup and hash mismatches report the same message so the response
	// does not reveal which accounts exist.
	user, err := a.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			err = apperr.New(apperr.KindValidation, "invalid credentials")
		}
		respondError(w, err)
		return
	}
	if !password.Verify(user.PasswordHash, req.Password) {
		respondError(w, apperr.New(apperr.KindValidation, "invalid credentials"))
		return
	}

	pair, err := a.tokens.Issue(user.ID)
	if err != nil {
		respondError(w, apperr.Internal(err))
		return
	}

	a.audit(r.Context(), &user.ID, "user.logged_in", "user", strPtr(user.ID.String()), nil)
	respondJSON(w, http.StatusOK, pair)
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	if req.RefreshToken == "" {
		respondError(w, apperr.Unauthorized("no refresh token provided"))
		return
	}

	userID, err := a.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.tokens.Issue(userID)
	if err != nil {
		respondError(w, apperr.Internal(err))
		return
	}

	respondJSON(w, http.StatusOK, pair)
}

func strPtr(s string) *string {
	return &s
}
