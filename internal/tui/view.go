package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kilo9alfa/workouttracker/internal/calendar"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	weekLabelStyle   = lipgloss.NewStyle().Faint(true)
	currentWeekStyle = lipgloss.NewStyle().Bold(true)
	cellStyle        = lipgloss.NewStyle().Width(9).Height(2).Align(lipgloss.Center)
	cursorCellStyle  = cellStyle.Border(lipgloss.NormalBorder()).Width(9).Height(2)
	futureStyle      = lipgloss.NewStyle().Faint(true)
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	helpStyle        = lipgloss.NewStyle().Faint(true).Padding(1, 1, 0, 1)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Padding(0, 1)
	chipStyle        = lipgloss.NewStyle().Padding(0, 1)
)

// View renders the active screen.
func (m Model) View() string {
	var body string
	switch m.view {
	case viewSheet:
		body = m.viewSheet()
	case viewSettings:
		body = m.viewSettings()
	default:
		body = m.viewCalendar()
	}

	if m.status != "" {
		body += "\n" + statusStyle.Render("error: "+m.status)
	}
	return body
}

func (m Model) viewCalendar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Workout Tracker"))
	b.WriteString("\n\n")

	todayStr := calendar.DateString(m.today)
	thisMonday := calendar.MondayOf(m.today)

	for wi, monday := range m.weeks {
		sunday := calendar.AddDays(monday, 6)
		label := fmt.Sprintf("%s  %s–%s", calendar.WeekLabel(monday),
			monday.Format("Jan 2"), sunday.Format("Jan 2"))
		total := fmt.Sprintf("%dm", m.cache.WeekTotal(monday))

		header := weekLabelStyle.Render(label) + "  " + total
		if monday.Equal(thisMonday) {
			header = currentWeekStyle.Render(label + "  " + total + "  ← this week")
		}
		b.WriteString(" " + header + "\n")

		cells := make([]string, 0, 7)
		for di := 0; di < 7; di++ {
			day := calendar.AddDays(monday, di)
			cells = append(cells, m.renderDayCell(day, todayStr, wi == m.weekIdx && di == m.dayIdx))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("arrows: move · enter: log · r: refresh · s: settings · q: quit"))
	return b.String()
}

func (m Model) renderDayCell(day time.Time, todayStr string, selected bool) string {
	ds := calendar.DateString(day)
	workouts := m.cache.Workouts(ds)

	name := day.Format("Mon 2")
	if ds == todayStr {
		name = "• " + name
	}

	content := name
	if len(workouts) > 0 {
		durations := make([]string, 0, len(workouts))
		for _, w := range workouts {
			durations = append(durations, fmt.Sprintf("%dm", w.DurationMinutes))
		}
		content += "\n" + strings.Join(durations, " ")
	}

	style := cellStyle
	if selected {
		style = cursorCellStyle
	}
	if len(workouts) > 0 {
		style = style.Background(lipgloss.Color(workouts[0].ExerciseTypeColor)).
			Foreground(lipgloss.Color("#000000"))
	} else if ds > todayStr {
		style = style.Inherit(futureStyle)
	}
	return style.Render(content)
}

func (m Model) viewSheet() string {
	var b strings.Builder
	date, _ := calendar.ParseDate(m.sheet.date)
	b.WriteString(titleStyle.Render("Log Workout — " + date.Format("Mon 2 Jan")))
	b.WriteString("\n\n")

	existing := m.cache.Workouts(m.sheet.date)
	if len(existing) > 0 {
		b.WriteString(" Logged:\n")
		for i, w := range existing {
			marker := "  "
			if i == m.sheet.existingIdx {
				marker = "> "
			}
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(w.ExerciseTypeColor)).Render("●")
			b.WriteString(fmt.Sprintf(" %s%s %s %dm\n", marker, dot, w.ExerciseTypeName, w.DurationMinutes))
		}
		b.WriteString("\n")
	}

	b.WriteString(" Type: " + m.renderTypeChips() + "\n")
	b.WriteString(fmt.Sprintf(" Duration: %dm  (+/- to adjust)\n", m.sheet.duration))
	b.WriteString(" Notes: " + m.sheet.notes.View() + "\n")

	if m.sheet.hint != "" {
		b.WriteString("\n " + hintStyle.Render(m.sheet.hint) + "\n")
	}
	if m.sheet.saving {
		b.WriteString("\n Saving...\n")
	}

	b.WriteString(helpStyle.Render("←/→: type · +/-: duration · n: notes · ↑/↓+d: delete logged · enter: save · esc: back"))
	return b.String()
}

func (m Model) renderTypeChips() string {
	if len(m.types) == 0 {
		return weekLabelStyle.Render("no exercise types yet — add some in settings")
	}
	chips := make([]string, 0, len(m.types))
	for i, et := range m.types {
		label := et.Name
		if et.DefaultDurationMinutes != nil {
			label = fmt.Sprintf("%s %dm", et.Name, *et.DefaultDurationMinutes)
		}
		style := chipStyle.Foreground(lipgloss.Color(et.Color))
		if i == m.sheet.typeIdx {
			style = style.Reverse(true).Bold(true)
		}
		chips = append(chips, style.Render(label))
	}
	return strings.Join(chips, " ")
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings — Exercise Types"))
	b.WriteString("\n\n")

	if len(m.types) == 0 {
		b.WriteString(" No exercise types yet. Press a to add one.\n")
	}

	for i, et := range m.types {
		marker := "  "
		if i == m.settings.cursor {
			marker = "> "
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(et.Color)).Render("■")
		dur := "—"
		if et.DefaultDurationMinutes != nil {
			dur = fmt.Sprintf("%dm", *et.DefaultDurationMinutes)
		}
		if m.settings.editing && i == m.settings.cursor {
			dur = m.settings.durInput.View()
		}
		b.WriteString(fmt.Sprintf(" %s%s %-20s default %s\n", marker, swatch, et.Name, dur))
	}

	if m.settings.adding {
		b.WriteString("\n Add type: " + m.settings.nameInput.View() + "\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: move · K/J: reorder · e: default duration · a: add · d: delete · esc: back"))
	return b.String()
}
