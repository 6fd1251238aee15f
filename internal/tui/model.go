// Package tui renders the rolling calendar, the log-workout sheet and the
// settings screen as a bubbletea program.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kilo9alfa/workouttracker/internal/calendar"
	"github.com/kilo9alfa/workouttracker/internal/client"
	"github.com/kilo9alfa/workouttracker/internal/domain"
)

type view int

const (
	viewCalendar view = iota
	viewSheet
	viewSettings
)

const (
	minDuration  = 1
	maxDuration  = 300
	durationStep = 5
)

// palette cycles through colors for newly added types.
var palette = []string{"#4ade80", "#60a5fa", "#f472b6", "#fbbf24", "#f87171", "#a78bfa", "#34d399", "#fb923c"}

// Model is the top-level bubbletea model.
type Model struct {
	client *client.Client
	cache  *calendar.Cache
	types  []domain.ExerciseType

	today time.Time
	weeks []time.Time

	view    view
	weekIdx int
	dayIdx  int

	sheet    sheetState
	settings settingsState

	status string
	width  int
}

type sheetState struct {
	date        string
	typeIdx     int
	duration    int
	notes       textinput.Model
	notesActive bool
	existingIdx int
	saving      bool
	hint        string
}

type settingsState struct {
	cursor    int
	editing   bool
	durInput  textinput.Model
	adding    bool
	nameInput textinput.Model
}

// New constructs the Model around a REST client.
func New(c *client.Client) Model {
	today := time.Now()
	notes := textinput.New()
	notes.Placeholder = "notes (optional)"
	notes.CharLimit = 200

	dur := textinput.New()
	dur.Placeholder = "min"
	dur.CharLimit = 3

	name := textinput.New()
	name.Placeholder = "new type name"
	name.CharLimit = 40

	m := Model{
		client: c,
		cache:  calendar.NewCache(),
		today:  today,
		weeks:  calendar.Weeks(today),
		sheet:  sheetState{notes: notes, typeIdx: -1},
		settings: settingsState{
			durInput:  dur,
			nameInput: name,
		},
	}
	// Start on the current week.
	m.weekIdx = calendar.WeeksBefore
	m.dayIdx = calendar.ISODay(today)
	return m
}

// Init fetches types and the six-week workout window.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTypesCmd(), m.loadWorkoutsCmd())
}

// Messages carrying async results back into Update.
type (
	typesLoadedMsg    []domain.ExerciseType
	workoutsLoadedMsg []domain.EnrichedWorkout
	workoutSavedMsg   domain.EnrichedWorkout
	workoutDeletedMsg struct {
		date string
		id   int64
	}
	typeCreatedMsg  domain.ExerciseType
	typeUpdatedMsg  domain.ExerciseType
	typeDeletedMsg  int64
	reorderSavedMsg []domain.ExerciseType
	errMsg          struct{ err error }
)

func (m Model) loadTypesCmd() tea.Cmd {
	return func() tea.Msg {
		types, err := m.client.ListExerciseTypes(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return typesLoadedMsg(types)
	}
}

func (m Model) loadWorkoutsCmd() tea.Cmd {
	from, to := calendar.FetchWindow(m.today)
	return func() tea.Msg {
		workouts, err := m.client.ListWorkouts(context.Background(), from, to)
		if err != nil {
			return errMsg{err}
		}
		return workoutsLoadedMsg(workouts)
	}
}

func (m Model) saveWorkoutCmd() tea.Cmd {
	et := m.types[m.sheet.typeIdx]
	params := client.CreateWorkoutParams{
		ExerciseTypeID:  et.ID,
		Date:            m.sheet.date,
		DurationMinutes: m.sheet.duration,
	}
	if notes := m.sheet.notes.Value(); notes != "" {
		params.Notes = &notes
	}
	return func() tea.Msg {
		saved, err := m.client.CreateWorkout(context.Background(), params)
		if err != nil {
			return errMsg{err}
		}
		// Optimistic enrichment with the selected type's display fields.
		return workoutSavedMsg(domain.EnrichedWorkout{
			Workout:           *saved,
			ExerciseTypeName:  et.Name,
			ExerciseTypeColor: et.Color,
		})
	}
}

func (m Model) deleteWorkoutCmd(date string, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.DeleteWorkout(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return workoutDeletedMsg{date: date, id: id}
	}
}

func (m Model) createTypeCmd(name string) tea.Cmd {
	color := palette[len(m.types)%len(palette)]
	return func() tea.Msg {
		created, err := m.client.CreateExerciseType(context.Background(), client.CreateExerciseTypeParams{
			Name:  name,
			Color: color,
		})
		if err != nil {
			return errMsg{err}
		}
		return typeCreatedMsg(*created)
	}
}

func (m Model) updateTypeDurationCmd(id int64, minutes *int) tea.Cmd {
	patch := map[string]interface{}{"default_duration_minutes": nil}
	if minutes != nil {
		patch["default_duration_minutes"] = *minutes
	}
	return func() tea.Msg {
		updated, err := m.client.UpdateExerciseType(context.Background(), id, patch)
		if err != nil {
			return errMsg{err}
		}
		return typeUpdatedMsg(*updated)
	}
}

func (m Model) deleteTypeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.DeleteExerciseType(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return typeDeletedMsg(id)
	}
}

func (m Model) reorderCmd(ids []int64) tea.Cmd {
	return func() tea.Msg {
		types, err := m.client.ReorderExerciseTypes(context.Background(), ids)
		if err != nil {
			return errMsg{err}
		}
		return reorderSavedMsg(types)
	}
}
