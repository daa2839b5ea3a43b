// Package bot содержит Telegram-интерфейс приложения.
package bot

import (
	"fmt"
	"strings"
	"time"

	"focusboard/internal/model"
	"focusboard/internal/planner"
	"focusboard/internal/service"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var subjectCaser = cases.Title(language.English)

// formatSubject приводит название предмета к заголовочному регистру
func formatSubject(subject string) string {
	if subject == "" {
		return ""
	}
	return subjectCaser.String(subject)
}

// formatTimeRange форматирует интервал сессии
func formatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatSchedule форматирует сохраненное расписание на день
func FormatSchedule(day time.Time, events []model.CalendarEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule for %s\n\n", day.Format("Monday, 2 January"))

	if len(events) == 0 {
		b.WriteString("Nothing scheduled yet. Use /plan to build a schedule.")
		return b.String()
	}

	for _, e := range events {
		line := formatTimeRange(e.StartsAt, e.EndsAt) + " "
		if e.Kind == model.SessionKindBreak {
			line += "Break"
		} else {
			line += e.Title
			if e.Subject != "" {
				line += " (" + formatSubject(e.Subject) + ")"
			}
			if e.Priority == model.PriorityHigh {
				line += " !"
			}
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// FormatOptimization форматирует результат построения расписания
func FormatOptimization(opt *planner.Optimization) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan for %s\n\n", opt.Date.Format("Monday, 2 January"))

	for _, s := range opt.Sessions {
		line := formatTimeRange(s.StartsAt, s.EndsAt) + " "
		if s.IsBreak() {
			line += "Break"
		} else {
			line += s.Title
			if s.Subject != "" {
				line += " (" + formatSubject(s.Subject) + ")"
			}
		}
		b.WriteString(line + "\n")
	}

	if len(opt.Sessions) > 0 {
		fmt.Fprintf(&b, "\nStudy: %d min, breaks: %d min, efficiency: %.0f%%\n",
			opt.StudyMinutes, opt.BreakMinutes, opt.Efficiency*100)
	}

	for _, s := range opt.Suggestions {
		b.WriteString("\n" + s)
	}

	return b.String()
}

// FormatHabitStats форматирует статистику привычек
func FormatHabitStats(stats []service.HabitStats) string {
	if len(stats) == 0 {
		return "No habits yet. Add one in the app to start tracking."
	}

	var b strings.Builder
	b.WriteString("Your habits\n\n")

	for i, st := range stats {
		mark := " "
		if st.DoneToday {
			mark = "x"
		}
		fmt.Fprintf(&b, "%d. [%s] %s — streak %d, level %d (%d XP)\n",
			i+1, mark, st.Habit.Title, st.Streak, st.Level, st.XP)
	}

	b.WriteString("\nUse /done <number> to complete a habit for today.")
	return b.String()
}
