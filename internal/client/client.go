// Package client is a typed HTTP client for the workout tracker API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kilo9alfa/workouttracker/internal/auth"
	"github.com/kilo9alfa/workouttracker/internal/domain"
)

// Client talks to the /workout/api endpoints.
type Client struct {
	baseURL string
	email   string
	http    *http.Client
}

// New builds a Client. email is sent as the dev identity header; when the
// client runs behind the access proxy the proxy header wins server-side.
func New(baseURL, email string) *Client {
	return &Client{
		baseURL: baseURL,
		email:   email,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Me returns the identity the server sees.
func (c *Client) Me(ctx context.Context) (string, error) {
	var out struct {
		Email string `json:"email"`
	}
	if err := c.do(ctx, http.MethodGet, "/workout/api/me", nil, &out); err != nil {
		return "", err
	}
	return out.Email, nil
}

// ListExerciseTypes fetches the caller's types in display order.
func (c *Client) ListExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error) {
	var out []domain.ExerciseType
	err := c.do(ctx, http.MethodGet, "/workout/api/exercise-types", nil, &out)
	return out, err
}

// CreateExerciseTypeParams is the POST /exercise-types payload.
type CreateExerciseTypeParams struct {
	Name                   string `json:"name"`
	Color                  string `json:"color,omitempty"`
	DefaultDurationMinutes *int   `json:"default_duration_minutes,omitempty"`
}

// CreateExerciseType adds a type.
func (c *Client) CreateExerciseType(ctx context.Context, params CreateExerciseTypeParams) (*domain.ExerciseType, error) {
	var out domain.ExerciseType
	if err := c.do(ctx, http.MethodPost, "/workout/api/exercise-types", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExerciseType applies a partial update. The patch map is marshalled
// as-is, so a nil value sends an explicit JSON null to clear a field.
func (c *Client) UpdateExerciseType(ctx context.Context, id int64, patch map[string]interface{}) (*domain.ExerciseType, error) {
	var out domain.ExerciseType
	path := fmt.Sprintf("/workout/api/exercise-types/%d", id)
	if err := c.do(ctx, http.MethodPut, path, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteExerciseType removes a type; deleting an absent id succeeds.
func (c *Client) DeleteExerciseType(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/workout/api/exercise-types/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ReorderExerciseTypes persists a new display order in one batch and
// returns the resulting list.
func (c *Client) ReorderExerciseTypes(ctx context.Context, ids []int64) ([]domain.ExerciseType, error) {
	var out []domain.ExerciseType
	body := map[string]interface{}{"ids": ids}
	err := c.do(ctx, http.MethodPost, "/workout/api/exercise-types/reorder", body, &out)
	return out, err
}

// ListWorkouts fetches enriched workouts with date in [from, to].
func (c *Client) ListWorkouts(ctx context.Context, from, to string) ([]domain.EnrichedWorkout, error) {
	var out []domain.EnrichedWorkout
	path := "/workout/api/workouts?" + url.Values{"from": {from}, "to": {to}}.Encode()
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// CreateWorkoutParams is the POST /workouts payload.
type CreateWorkoutParams struct {
	ExerciseTypeID  int64   `json:"exercise_type_id"`
	Date            string  `json:"date"`
	DurationMinutes int     `json:"duration_minutes"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateWorkout logs a session.
func (c *Client) CreateWorkout(ctx context.Context, params CreateWorkoutParams) (*domain.Workout, error) {
	var out domain.Workout
	if err := c.do(ctx, http.MethodPost, "/workout/api/workouts", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkout applies a partial update; nil map values send explicit null.
func (c *Client) UpdateWorkout(ctx context.Context, id int64, patch map[string]interface{}) (*domain.Workout, error) {
	var out domain.Workout
	path := fmt.Sprintf("/workout/api/workouts/%d", id)
	if err := c.do(ctx, http.MethodPut, path, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWorkout removes a session; deleting an absent id succeeds.
func (c *Client) DeleteWorkout(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/workout/api/workouts/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.email != "" {
		req.Header.Set(auth.DevHeader, c.email)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
