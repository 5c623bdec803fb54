package ui

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinnedCalendar() *Calendar {
	return &Calendar{Now: func() time.Time {
		return time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	}}
}

func findButton(kb tgbotapi.InlineKeyboardMarkup, label string) *tgbotapi.InlineKeyboardButton {
	for _, row := range kb.InlineKeyboard {
		for i, btn := range row {
			if btn.Text == label {
				return &row[i]
			}
		}
	}
	return nil
}

func Test_Render_EmitsDayCallbacks(t *testing.T) {
	//Arrange
	cal := pinnedCalendar()

	//Act
	kb := cal.Render(2026, 3, true)

	//Assert
	header := kb.InlineKeyboard[0]
	assert.Equal(t, "Marzo 2026", header[1].Text)
	assert.Equal(t, "cal_prev_2026_3_1", *header[0].CallbackData)
	assert.Equal(t, "cal_next_2026_3_1", *header[2].CallbackData)

	day := findButton(kb, "15")
	require.NotNil(t, day)
	assert.Equal(t, "cal_day_2026_3_15", *day.CallbackData)

	last := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	require.Len(t, last, 2)
	assert.Equal(t, CalToday, *last[0].CallbackData)
	assert.Equal(t, CalCancel, *last[1].CallbackData)
}

func Test_Render_DisablesPastDays(t *testing.T) {
	//Arrange
	cal := pinnedCalendar()

	//Act
	kb := cal.Render(2026, 3, false)

	//Assert
	assert.Nil(t, findButton(kb, "9"), "day before today must not be selectable")

	today := findButton(kb, "10")
	require.NotNil(t, today)
	assert.Equal(t, "cal_day_2026_3_10", *today.CallbackData)
}

func Test_MonthWeeks_MondayFirst(t *testing.T) {
	//Act
	weeks := monthWeeks(2026, 3)

	//Assert: March 2026 starts on a Sunday, so the first week holds only
	// day 1 in the last column.
	require.Len(t, weeks, 6)
	assert.Equal(t, [7]int{0, 0, 0, 0, 0, 0, 1}, weeks[0])
	assert.Equal(t, [7]int{2, 3, 4, 5, 6, 7, 8}, weeks[1])
	assert.Equal(t, [7]int{30, 31, 0, 0, 0, 0, 0}, weeks[5])
}

func Test_Navigate_WrapsYears(t *testing.T) {
	//Act
	prevYear, prevMonth := Navigate("prev", 2026, 1)
	nextYear, nextMonth := Navigate("next", 2026, 12)
	sameYear, sameMonth := Navigate("next", 2026, 5)

	//Assert
	assert.Equal(t, 2025, prevYear)
	assert.Equal(t, 12, prevMonth)
	assert.Equal(t, 2027, nextYear)
	assert.Equal(t, 1, nextMonth)
	assert.Equal(t, 2026, sameYear)
	assert.Equal(t, 6, sameMonth)
}
