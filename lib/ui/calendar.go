package ui

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback payloads emitted by the calendar keyboard. Field order and the
// underscore delimiter are wire-compatible with the deployed chat client.
const (
	CalIgnore     = "cal_ignore"
	calDayFmt     = "cal_day_%d_%d_%d"
	calPrevFmt    = "cal_prev_%d_%d_%s"
	calNextFmt    = "cal_next_%d_%d_%s"
	CalToday      = "cal_today"
	disabledGlyph = "·"

	// CalCancel aborts the flow that opened the calendar. Same payload as
	// the global cancel button so the dispatcher needs no special case.
	CalCancel = "cancel"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var weekdayLabels = [...]string{"Lu", "Ma", "Mi", "Ju", "Vi", "Sa", "Do"}

// Calendar renders month grids for inline date selection. Today is read
// through a function so tests can pin it.
type Calendar struct {
	Now func() time.Time
}

// NewCalendar returns a calendar using the wall clock.
func NewCalendar() *Calendar {
	return &Calendar{Now: time.Now}
}

// Render builds the inline month grid: a header row with navigation, a
// Monday-first weekday row, then one row per calendar week. Days outside
// the month are blank placeholders; when allowPast is false, days before
// today render as a disabled dot that never emits a date.
func (c *Calendar) Render(year, month int, allowPast bool) tgbotapi.InlineKeyboardMarkup {
	pastFlag := "0"
	if allowPast {
		pastFlag = "1"
	}

	header := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("<<", fmt.Sprintf(calPrevFmt, year, month, pastFlag)),
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %d", monthNames[month-1], year), CalIgnore),
		tgbotapi.NewInlineKeyboardButtonData(">>", fmt.Sprintf(calNextFmt, year, month, pastFlag)),
	)

	var weekdays []tgbotapi.InlineKeyboardButton
	for _, label := range weekdayLabels {
		weekdays = append(weekdays, tgbotapi.NewInlineKeyboardButtonData(label, CalIgnore))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{header, weekdays}

	today := c.Now()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	for _, week := range monthWeeks(year, month) {
		var row []tgbotapi.InlineKeyboardButton
		for _, day := range week {
			switch {
			case day == 0:
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", CalIgnore))
			case !allowPast && beforeDay(year, month, day, todayDate):
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(disabledGlyph, CalIgnore))
			default:
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%d", day), fmt.Sprintf(calDayFmt, year, month, day)))
			}
		}
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📅 Hoy", CalToday),
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", CalCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Navigate computes the month shown after a prev/next tap, wrapping across
// year boundaries.
func Navigate(direction string, year, month int) (int, int) {
	switch direction {
	case "prev":
		month--
		if month < 1 {
			month = 12
			year--
		}
	case "next":
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return year, month
}

// monthWeeks lays the days of a month into Monday-first weeks, padding the
// edges with zeros, matching calendar.monthcalendar semantics.
func monthWeeks(year, month int) [][7]int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Weekday with Monday == 0.
	lead := (int(first.Weekday()) + 6) % 7

	var weeks [][7]int
	var week [7]int
	col := lead
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func beforeDay(year, month, day int, today time.Time) bool {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}
