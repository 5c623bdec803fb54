package reports

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Broadcaster sends report summaries to the shared group chat. A zero
// GroupChatID disables broadcasting; failures are logged, never bubbled up
// to the flow that triggered them, since the DB write already stands.
type Broadcaster struct {
	Bot         *tgbotapi.BotAPI
	GroupChatID int64
	Logger      *logrus.Logger
}

// Send posts a MarkdownV2 message to the group, attaching the photo bytes
// when present. On a formatting rejection it retries once as plain text so
// the report is never silently lost.
func (b *Broadcaster) Send(text string, photo []byte) {
	if b.GroupChatID == 0 {
		b.Logger.Warn("GROUP_CHAT_ID not configured, report not broadcast")
		return
	}

	var err error
	if len(photo) > 0 {
		msg := tgbotapi.NewPhoto(b.GroupChatID, tgbotapi.FileBytes{Name: "foto.jpg", Bytes: photo})
		msg.Caption = text
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		_, err = b.Bot.Send(msg)
	} else {
		msg := tgbotapi.NewMessage(b.GroupChatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		_, err = b.Bot.Send(msg)
	}
	if err == nil {
		return
	}

	b.Logger.WithFields(logrus.Fields{
		"group_chat_id": b.GroupChatID,
		"error":         err.Error(),
	}).Error("Failed to broadcast report, retrying as plain text")

	plain := tgbotapi.NewMessage(b.GroupChatID, "Error de formato en reporte. Contenido:\n\n"+text)
	if _, err := b.Bot.Send(plain); err != nil {
		b.Logger.WithError(err).Error("Plain-text broadcast fallback also failed")
	}
}
