// Package api exposes the HTTP surface of the workout tracker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/kilo9alfa/workouttracker/internal/auth"
	"github.com/kilo9alfa/workouttracker/internal/domain"
)

// notFoundMessage is shared by the absent-row and empty-patch causes; the
// wire contract deliberately does not distinguish them.
const notFoundMessage = "Not found or no changes"

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/workout/api/exercise-types", h.exerciseTypes)
	mux.HandleFunc("/workout/api/exercise-types/", h.exerciseTypeSubpath)
	mux.HandleFunc("/workout/api/workouts", h.workouts)
	mux.HandleFunc("/workout/api/workouts/", h.workoutByID)
	mux.HandleFunc("/workout/api/me", h.me)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}
	email, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}

func (h *Handler) exerciseTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listExerciseTypes(w, r)
	case http.MethodPost:
		h.createExerciseType(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

func (h *Handler) exerciseTypeSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/workout/api/exercise-types/")
	if rest == "reorder" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.reorderExerciseTypes(w, r)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateExerciseType(w, r, id)
	case http.MethodDelete:
		h.deleteExerciseType(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

func (h *Handler) listExerciseTypes(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	types, err := h.service.ListExerciseTypes(r.Context(), owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types)
}

type createExerciseTypeRequest struct {
	Name                   string `json:"name"`
	Color                  string `json:"color"`
	DefaultDurationMinutes *int   `json:"default_duration_minutes"`
}

func (h *Handler) createExerciseType(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createExerciseTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.service.CreateExerciseType(r.Context(), owner, req.Name, req.Color, req.DefaultDurationMinutes)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateExerciseType(w http.ResponseWriter, r *http.Request, id int64) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var patch domain.ExerciseTypePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	updated, err := h.service.UpdateExerciseType(r.Context(), owner, id, patch)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteExerciseType(w http.ResponseWriter, r *http.Request, id int64) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteExerciseType(r.Context(), owner, id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type reorderRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *Handler) reorderExerciseTypes(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids are required")
		return
	}

	types, err := h.service.ReorderExerciseTypes(r.Context(), owner, req.IDs)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handler) workouts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listWorkouts(w, r)
	case http.MethodPost:
		h.createWorkout(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

func (h *Handler) workoutByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/workout/api/workouts/")
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateWorkout(w, r, id)
	case http.MethodDelete:
		h.deleteWorkout(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query params required")
		return
	}

	workouts, err := h.service.ListWorkouts(r.Context(), owner, from, to)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

type createWorkoutRequest struct {
	ExerciseTypeID  int64   `json:"exercise_type_id"`
	Date            string  `json:"date"`
	DurationMinutes int     `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}
	if req.ExerciseTypeID == 0 || req.Date == "" || req.DurationMinutes == 0 {
		writeError(w, http.StatusBadRequest, "exercise_type_id, date, and duration_minutes are required")
		return
	}

	created, err := h.service.CreateWorkout(r.Context(), owner, domain.CreateWorkoutInput{
		ExerciseTypeID:  req.ExerciseTypeID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateWorkout(w http.ResponseWriter, r *http.Request, id int64) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var patch domain.WorkoutPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	updated, err := h.service.UpdateWorkout(r.Context(), owner, id, patch)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteWorkout(w http.ResponseWriter, r *http.Request, id int64) {
	owner, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteWorkout(r.Context(), owner, id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrEmptyPatch):
		writeError(w, http.StatusNotFound, notFoundMessage)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
