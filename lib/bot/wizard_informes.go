package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"obrabot/lib/constants"
	"obrabot/lib/models"
	"obrabot/lib/reports"
	"obrabot/lib/ui"
)

const (
	reportAvances  = "avances"
	reportPersonal = "personal"
)

func (b *Bot) showInformesMenu(chatID int64) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Informe de Avances", cbInformeAvances),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧮 Informe de Personal", cbInformePersonal),
		),
		backToMenuRow(),
	)
	b.sendKeyboard(chatID, "¿Qué informe quieres generar?", kb)
}

// startInformeAvances opens the avance report wizard on the location
// filter walk. Every level offers "Todos" to skip narrowing further.
func (b *Bot) startInformeAvances(ctx context.Context, chatID int64, sess *Session) {
	tipos, err := b.Ubicaciones.GetDistinctTipos(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to load location types for report")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	levels, err := ui.SortLevels(tipos)
	if err != nil {
		b.send(chatID, "No hay ubicaciones configuradas; el informe saldrá sin filtro de ubicación.")
		levels = nil
	}

	sess.Report = &ReportDraft{Kind: reportAvances}
	if len(levels) == 0 {
		b.promptReportStart(chatID, sess)
		return
	}

	sess.State = StateReportWalk
	sess.Walk = ui.NewWalk(levels)
	b.promptWalkLevel(ctx, chatID, sess)
}

// reportWalkSelect records one filter level; an empty value means "all of
// this level" and still advances, mirroring the prefix semantics of the
// stored path.
func (b *Bot) reportWalkSelect(ctx context.Context, chatID int64, sess *Session, value string) {
	if sess.Walk == nil || sess.Report == nil {
		b.send(chatID, "Esa selección ya no corresponde a ninguna operación en curso.")
		return
	}
	if !sess.Walk.Select(value) {
		b.promptWalkLevel(ctx, chatID, sess)
		return
	}

	for _, choice := range sess.Walk.Choices {
		switch choice.Level {
		case "Edificio":
			sess.Report.Filter.Edificio = choice.Value
		case "Planta":
			sess.Report.Filter.Planta = choice.Value
		case "Zona":
			sess.Report.Filter.Zona = choice.Value
		case "Trabajo":
			sess.Report.Filter.Trabajo = choice.Value
		}
	}
	b.promptReportStart(chatID, sess)
}

func (b *Bot) startInformePersonal(chatID int64, sess *Session) {
	sess.Report = &ReportDraft{Kind: reportPersonal}
	b.promptReportStart(chatID, sess)
}

func (b *Bot) promptReportStart(chatID int64, sess *Session) {
	sess.State = StateReportStartDate
	now := b.Calendar.Now()
	sess.CalYear, sess.CalMonth = now.Year(), int(now.Month())
	b.sendKeyboard(chatID, "Elige la fecha de inicio del informe:",
		b.Calendar.Render(sess.CalYear, sess.CalMonth, true))
}

func (b *Bot) reportStartChosen(ctx context.Context, chatID int64, sess *Session, date time.Time) {
	if sess.Report == nil {
		return
	}
	start := date
	sess.Report.Filter.StartDate = &start
	sess.State = StateReportEndDate
	b.sendKeyboard(chatID, "Elige la fecha de fin del informe:",
		b.Calendar.Render(sess.CalYear, sess.CalMonth, true))
}

func (b *Bot) reportEndChosen(ctx context.Context, chatID, userID int64, sess *Session, date time.Time) {
	if sess.Report == nil || sess.Report.Filter.StartDate == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	if date.Before(*sess.Report.Filter.StartDate) {
		b.sendKeyboard(chatID, "La fecha de fin no puede ser anterior a la de inicio. Elige otra:",
			b.Calendar.Render(sess.CalYear, sess.CalMonth, true))
		return
	}
	end := date
	sess.Report.Filter.EndDate = &end
	sess.State = StateIdle

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 CSV", cbFormatoCSV),
			tgbotapi.NewInlineKeyboardButtonData("📕 PDF", cbFormatoPDF),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "¿En qué formato quieres el informe?", kb)
}

// generateReport builds and sends the export, then posts a short summary
// to the group chat.
func (b *Bot) generateReport(ctx context.Context, chatID int64, sess *Session, format string) {
	draft := sess.Report
	if draft == nil || draft.Filter.StartDate == nil || draft.Filter.EndDate == nil {
		b.send(chatID, "El informe ya no está en curso. Empieza de nuevo desde el menú.")
		return
	}

	switch draft.Kind {
	case reportAvances:
		b.generateAvancesReport(ctx, chatID, draft, format)
	case reportPersonal:
		b.generatePersonalReport(ctx, chatID, draft, format)
	default:
		b.send(chatID, "Tipo de informe desconocido.")
	}
	sess.Report = nil
}

func (b *Bot) generateAvancesReport(ctx context.Context, chatID int64, draft *ReportDraft, format string) {
	avances, err := b.Avances.GetForReport(ctx, draft.Filter)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to query avances for report")
		b.send(chatID, "No se ha podido generar el informe. Inténtalo de nuevo.")
		return
	}
	if len(avances) == 0 {
		b.sendKeyboard(chatID, "No hay avances en ese rango con ese filtro.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	incidencias := b.incidenciasByAvance(ctx)

	var contents []byte
	var name string
	now := b.Calendar.Now()
	switch format {
	case "pdf":
		contents, err = reports.AvancesPDF(avances)
		name = reports.PDFFileName(reportAvances, now)
	default:
		contents, err = reports.AvancesCSV(avances, incidencias)
		name = reports.CSVFileName(reportAvances, now)
	}
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to render avances report")
		b.send(chatID, "No se ha podido generar el informe. Inténtalo de nuevo.")
		return
	}

	b.sendDocument(chatID, name, contents)
	b.send(chatID, fmt.Sprintf("📊 Informe generado con %d avances.", len(avances)))
}

// incidenciasByAvance groups every incidencia under its avance for the
// CSV export; a lookup failure degrades to a report without incidencias.
func (b *Bot) incidenciasByAvance(ctx context.Context) map[int64][]models.Incidencia {
	incs, err := b.Incidencias.GetByEstado(ctx,
		[]string{constants.IncidenciaPendiente, constants.IncidenciaResuelta})
	if err != nil {
		b.Logger.WithField("error", err.Error()).Warn("Failed to load incidencias for report")
		return nil
	}

	grouped := make(map[int64][]models.Incidencia)
	for _, inc := range incs {
		if inc.AvanceID != nil {
			grouped[*inc.AvanceID] = append(grouped[*inc.AvanceID], inc)
		}
	}
	return grouped
}

func (b *Bot) generatePersonalReport(ctx context.Context, chatID int64, draft *ReportDraft, format string) {
	registros, err := b.Registros.GetForRange(ctx, *draft.Filter.StartDate, *draft.Filter.EndDate)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to query headcounts for report")
		b.send(chatID, "No se ha podido generar el informe. Inténtalo de nuevo.")
		return
	}
	if len(registros) == 0 {
		b.sendKeyboard(chatID, "No hay registros de personal en ese rango.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	var contents []byte
	var name string
	now := b.Calendar.Now()
	switch format {
	case "pdf":
		contents, err = reports.PersonalPDF(registros)
		name = reports.PDFFileName(reportPersonal, now)
	default:
		contents, err = reports.PersonalCSV(registros)
		name = reports.CSVFileName(reportPersonal, now)
	}
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to render headcount report")
		b.send(chatID, "No se ha podido generar el informe. Inténtalo de nuevo.")
		return
	}

	b.sendDocument(chatID, name, contents)
	b.send(chatID, fmt.Sprintf("📊 Informe generado con %d días de registro.", len(registros)))
}
