package util

import "strings"

// ConditionalString returns valueIfTrue if condition is true, otherwise valueIfFalse
func ConditionalString(condition bool, valueIfTrue, valueIfFalse string) string {
	if condition {
		return valueIfTrue
	}
	return valueIfFalse
}

// markdownV2Specials are the characters Telegram requires escaped in MarkdownV2 text.
const markdownV2Specials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes user-provided text for MarkdownV2 messages.
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownV2Specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
// Used for button labels, which Telegram limits in length.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
