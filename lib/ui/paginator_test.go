package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(12, 5))
	assert.Equal(t, 2, TotalPages(10, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func Test_ClampPage(t *testing.T) {
	assert.Equal(t, 0, ClampPage(-1, 3))
	assert.Equal(t, 1, ClampPage(1, 3))
	assert.Equal(t, 2, ClampPage(7, 3))
	assert.Equal(t, 0, ClampPage(4, 0))
}

func Test_Keyboard_FirstPage(t *testing.T) {
	//Arrange
	page := Page{
		Items:      []PageItem{{Label: "uno", Callback: "view_item_1"}, {Label: "dos", Callback: "view_item_2"}},
		Index:      0,
		TotalPages: 3,
	}

	//Act
	kb := page.Keyboard("page_prev", "page_next", "🔙 Menú", "menu")

	//Assert: two item rows, a nav row with only "next", the back row.
	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, "view_item_1", *kb.InlineKeyboard[0][0].CallbackData)

	nav := kb.InlineKeyboard[2]
	require.Len(t, nav, 1)
	assert.Equal(t, "page_next", *nav[0].CallbackData)

	back := kb.InlineKeyboard[3]
	assert.Equal(t, "menu", *back[0].CallbackData)
}

func Test_Keyboard_MiddlePage(t *testing.T) {
	//Arrange
	page := Page{Items: []PageItem{{Label: "uno", Callback: "view_item_1"}}, Index: 1, TotalPages: 3}

	//Act
	kb := page.Keyboard("page_prev", "page_next", "🔙 Menú", "menu")

	//Assert
	nav := kb.InlineKeyboard[1]
	require.Len(t, nav, 2)
	assert.Equal(t, "page_prev", *nav[0].CallbackData)
	assert.Equal(t, "page_next", *nav[1].CallbackData)
}

func Test_Keyboard_SinglePage(t *testing.T) {
	//Arrange
	page := Page{Items: []PageItem{{Label: "uno", Callback: "view_item_1"}}, Index: 0, TotalPages: 1}

	//Act
	kb := page.Keyboard("page_prev", "page_next", "🔙 Menú", "menu")

	//Assert: no navigation row at all.
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "menu", *kb.InlineKeyboard[1][0].CallbackData)
}
