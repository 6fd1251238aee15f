package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kilo9alfa/workouttracker/internal/calendar"
	"github.com/kilo9alfa/workouttracker/internal/domain"
)

// Update routes messages to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case typesLoadedMsg:
		m.types = msg
		return m, nil

	case workoutsLoadedMsg:
		m.cache.Merge(msg)
		return m, nil

	case workoutSavedMsg:
		m.cache.Add(domain.EnrichedWorkout(msg))
		m.sheet.saving = false
		m.view = viewCalendar
		m.status = ""
		return m, nil

	case workoutDeletedMsg:
		m.cache.Remove(msg.date, msg.id)
		if n := len(m.cache.Workouts(msg.date)); m.sheet.existingIdx >= n && n > 0 {
			m.sheet.existingIdx = n - 1
		}
		return m, nil

	case typeCreatedMsg:
		// Structural change: reload the whole list rather than patching.
		m.settings.adding = false
		m.settings.nameInput.SetValue("")
		m.settings.nameInput.Blur()
		return m, m.loadTypesCmd()

	case typeDeletedMsg:
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}
		return m, m.loadTypesCmd()

	case typeUpdatedMsg:
		// Field-level edit: patch the list in place, no reload.
		for i := range m.types {
			if m.types[i].ID == msg.ID {
				m.types[i] = domain.ExerciseType(msg)
			}
		}
		return m, nil

	case reorderSavedMsg:
		m.types = msg
		return m, nil

	case errMsg:
		m.sheet.saving = false
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewCalendar:
			return m.updateCalendar(msg)
		case viewSheet:
			return m.updateSheet(msg)
		case viewSettings:
			return m.updateSettings(msg)
		}
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.weekIdx > 0 {
			m.weekIdx--
		}
	case "down", "j":
		if m.weekIdx < len(m.weeks)-1 {
			m.weekIdx++
		}
	case "left", "h":
		if m.dayIdx > 0 {
			m.dayIdx--
		}
	case "right", "l":
		if m.dayIdx < 6 {
			m.dayIdx++
		}
	case "r":
		m.status = ""
		return m, m.loadWorkoutsCmd()
	case "s":
		m.view = viewSettings
		m.settings.cursor = 0
		m.status = ""
	case "enter":
		m.openSheet(m.selectedDate())
		m.view = viewSheet
	}
	return m, nil
}

func (m Model) selectedDate() string {
	return calendar.DateString(calendar.AddDays(m.weeks[m.weekIdx], m.dayIdx))
}

func (m *Model) openSheet(date string) {
	m.sheet.date = date
	m.sheet.typeIdx = -1
	m.sheet.existingIdx = 0
	m.sheet.saving = false
	m.sheet.hint = ""
	m.sheet.notes.SetValue("")
	m.sheet.notes.Blur()
	m.sheet.notesActive = false
	m.sheet.duration = domain.DefaultWorkoutDuration
	for _, et := range m.types {
		if et.DefaultDurationMinutes != nil {
			m.sheet.duration = *et.DefaultDurationMinutes
			break
		}
	}
	m.status = ""
}

func (m Model) updateSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sheet.notesActive {
		switch msg.String() {
		case "esc", "enter":
			m.sheet.notesActive = false
			m.sheet.notes.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.sheet.notes, cmd = m.sheet.notes.Update(msg)
			return m, cmd
		}
	}

	if m.sheet.saving {
		// A save is in flight; the control stays disabled until it settles.
		return m, nil
	}

	existing := m.cache.Workouts(m.sheet.date)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewCalendar
	case "left", "h":
		m.cycleType(-1)
	case "right", "l", "tab":
		m.cycleType(1)
	case "+", "=":
		m.sheet.duration = clamp(m.sheet.duration+durationStep, minDuration, maxDuration)
	case "-", "_":
		m.sheet.duration = clamp(m.sheet.duration-durationStep, minDuration, maxDuration)
	case "n":
		m.sheet.notesActive = true
		return m, m.sheet.notes.Focus()
	case "up":
		if m.sheet.existingIdx > 0 {
			m.sheet.existingIdx--
		}
	case "down":
		if m.sheet.existingIdx < len(existing)-1 {
			m.sheet.existingIdx++
		}
	case "d":
		if len(existing) > 0 {
			target := existing[m.sheet.existingIdx]
			return m, m.deleteWorkoutCmd(target.Date, target.ID)
		}
	case "enter":
		if m.sheet.typeIdx < 0 {
			m.sheet.hint = "pick an exercise type first"
			return m, nil
		}
		m.sheet.hint = ""
		m.sheet.saving = true
		return m, m.saveWorkoutCmd()
	}
	return m, nil
}

func (m *Model) cycleType(delta int) {
	if len(m.types) == 0 {
		return
	}
	m.sheet.typeIdx = (m.sheet.typeIdx + delta + len(m.types)) % len(m.types)
	m.sheet.hint = ""
	if d := m.types[m.sheet.typeIdx].DefaultDurationMinutes; d != nil {
		m.sheet.duration = *d
	}
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.settings.adding {
		switch msg.String() {
		case "esc":
			m.settings.adding = false
			m.settings.nameInput.Blur()
			return m, nil
		case "enter":
			name := m.settings.nameInput.Value()
			if name == "" {
				return m, nil
			}
			return m, m.createTypeCmd(name)
		default:
			var cmd tea.Cmd
			m.settings.nameInput, cmd = m.settings.nameInput.Update(msg)
			return m, cmd
		}
	}

	if m.settings.editing {
		switch msg.String() {
		case "esc":
			m.settings.editing = false
			m.settings.durInput.Blur()
			return m, nil
		case "enter":
			m.settings.editing = false
			m.settings.durInput.Blur()
			et := m.types[m.settings.cursor]
			raw := m.settings.durInput.Value()
			if raw == "" {
				// Explicit clear: send null.
				return m, m.updateTypeDurationCmd(et.ID, nil)
			}
			minutes, err := strconv.Atoi(raw)
			if err != nil || minutes < minDuration || minutes > maxDuration {
				m.status = "default duration must be 1-300"
				return m, nil
			}
			return m, m.updateTypeDurationCmd(et.ID, &minutes)
		default:
			var cmd tea.Cmd
			m.settings.durInput, cmd = m.settings.durInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewCalendar
		m.status = ""
	case "up", "k":
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}
	case "down", "j":
		if m.settings.cursor < len(m.types)-1 {
			m.settings.cursor++
		}
	case "K", "shift+up":
		if m.settings.cursor > 0 {
			i := m.settings.cursor
			m.types[i-1], m.types[i] = m.types[i], m.types[i-1]
			m.settings.cursor--
			return m, m.reorderCmd(typeIDs(m.types))
		}
	case "J", "shift+down":
		if m.settings.cursor < len(m.types)-1 {
			i := m.settings.cursor
			m.types[i+1], m.types[i] = m.types[i], m.types[i+1]
			m.settings.cursor++
			return m, m.reorderCmd(typeIDs(m.types))
		}
	case "e":
		if len(m.types) > 0 {
			m.settings.editing = true
			et := m.types[m.settings.cursor]
			if et.DefaultDurationMinutes != nil {
				m.settings.durInput.SetValue(strconv.Itoa(*et.DefaultDurationMinutes))
			} else {
				m.settings.durInput.SetValue("")
			}
			return m, m.settings.durInput.Focus()
		}
	case "a":
		m.settings.adding = true
		return m, m.settings.nameInput.Focus()
	case "d":
		if len(m.types) > 0 {
			return m, m.deleteTypeCmd(m.types[m.settings.cursor].ID)
		}
	}
	return m, nil
}

func typeIDs(types []domain.ExerciseType) []int64 {
	ids := make([]int64, 0, len(types))
	for _, et := range types {
		ids = append(ids, et.ID)
	}
	return ids
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
