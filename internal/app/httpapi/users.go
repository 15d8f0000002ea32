package httpapi

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/qalabs/reporting-demo-api/internal/app/services/users"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
)

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Users.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string   `json:"name"`
		Email string   `json:"email"`
		Age   *float64 `json:"age"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	age, err := intAge(payload.Age)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Users.Create(r.Context(), payload.Name, payload.Email, age)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, found, err := h.app.Users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeErrorMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var payload struct {
		Name  *string  `json:"name"`
		Email *string  `json:"email"`
		Age   *float64 `json:"age"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	upd := users.Update{Name: payload.Name, Email: payload.Email}
	if payload.Age != nil {
		age, err := intAge(payload.Age)
		if err != nil {
			writeError(w, err)
			return
		}
		upd.Age = &age
	}

	updated, err := h.app.Users.Apply(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.app.Users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	matches, err := h.app.Users.Search(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// userID parses the id path variable. A malformed id behaves like an absent
// user rather than a malformed route.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusNotFound, "User not found")
		return 0, false
	}
	return id, true
}

// intAge converts the raw JSON age, rejecting absence and fractional values.
// Internal callers deal in plain ints; this is the boundary check.
func intAge(raw *float64) (int, error) {
	if raw == nil {
		return 0, apperr.Validation("invalid age")
	}
	if *raw != math.Trunc(*raw) {
		return 0, apperr.Validation("invalid age")
	}
	return int(*raw), nil
}
