package ui

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// PageItem is one row of a paginated listing: a button label plus the
// callback payload emitted when it is tapped.
type PageItem struct {
	Label    string
	Callback string
}

// Page is one rendered window of a larger result set. Totals come from a
// fresh count query on every render, so they can shift between clicks.
type Page struct {
	Items      []PageItem
	Index      int
	TotalPages int
}

// TotalPages computes ceil(total/perPage); zero when perPage is not positive.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// ClampPage forces a requested page index into [0, totalPages-1]. A stale
// "next" tap after rows were deleted lands on the last page instead of an
// empty one.
func ClampPage(page, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page >= totalPages {
		return totalPages - 1
	}
	return page
}

// Keyboard renders the page as an inline keyboard: one button per item,
// then a navigation row with "previous" only when a previous page exists
// and "next" only when a next page exists, then the back control.
func (p Page) Keyboard(prevCallback, nextCallback, backLabel, backCallback string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range p.Items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(item.Label, item.Callback),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if p.Index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Anterior", prevCallback))
	}
	if p.Index < p.TotalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Siguiente ➡️", nextCallback))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(backLabel, backCallback),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
