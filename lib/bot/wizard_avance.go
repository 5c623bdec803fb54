package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
	"obrabot/lib/models"
	"obrabot/lib/storage"
	"obrabot/lib/ui"
	"obrabot/lib/util"
)

// startAvance opens the registration wizard at the first hierarchy level.
func (b *Bot) startAvance(ctx context.Context, chatID, userID int64, sess *Session) {
	tipos, err := b.Ubicaciones.GetDistinctTipos(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to load location types")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	levels, err := ui.SortLevels(tipos)
	if err != nil {
		b.send(chatID, "No hay ubicaciones configuradas. Pide a un técnico que las cree primero.")
		return
	}

	sess.State = StateAvanceWalk
	sess.Walk = ui.NewWalk(levels)
	sess.Avance = &AvanceDraft{}
	b.promptWalkLevel(ctx, chatID, sess)
}

// promptWalkLevel renders the options of the current hierarchy level. The
// report wizard shares this walk and additionally offers a "todos" skip.
func (b *Bot) promptWalkLevel(ctx context.Context, chatID int64, sess *Session) {
	if sess.Walk == nil || sess.Walk.Done() {
		return
	}
	level := sess.Walk.CurrentLevel()

	opciones, err := b.Ubicaciones.GetByTipo(ctx, level)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"tipo":  level,
			"error": err.Error(),
		}).Error("Failed to load locations for level")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if len(opciones) == 0 && sess.State != StateReportWalk {
		b.send(chatID, fmt.Sprintf("No hay ubicaciones de tipo %s configuradas.", level))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, u := range opciones {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(u.Nombre, cbWalkSelPrefix+u.Nombre),
		))
	}
	if sess.State == StateReportWalk {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔎 Todos", cbFiltroTodos),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Atrás", cbWalkBack),
	))
	rows = append(rows, cancelRow())

	b.sendKeyboard(chatID, fmt.Sprintf("Selecciona %s:", level), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// avanceWalkSelect records one hierarchy pick and advances the wizard.
func (b *Bot) avanceWalkSelect(ctx context.Context, chatID, userID int64, sess *Session, value string) {
	if sess.Walk == nil || sess.Avance == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	if !sess.Walk.Select(value) {
		b.promptWalkLevel(ctx, chatID, sess)
		return
	}

	sess.Avance.Ubicacion = sess.Walk.Path()
	b.promptAvanceTipo(ctx, chatID, sess)
}

// promptAvanceTipo lists the known work categories plus the option to
// create a new one on the spot.
func (b *Bot) promptAvanceTipo(ctx context.Context, chatID int64, sess *Session) {
	tipos, err := b.Trabajos.GetAll(ctx)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to load work types")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	sess.State = StateAvanceTipo
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tipos {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Nombre, cbTipoPrefix+t.Nombre),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Otro trabajo", cbTipoNuevo),
	))
	rows = append(rows, cancelRow())
	b.sendKeyboard(chatID, "¿Qué trabajo se ha realizado?", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) avanceTipoChosen(ctx context.Context, chatID, userID int64, sess *Session, nombre string) {
	if sess.State != StateAvanceTipo || sess.Avance == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	sess.Avance.Trabajo = nombre
	b.promptAvanceEstado(chatID, sess)
}

// avanceTipoNuevoText stores a brand-new work type and continues with it.
// A concurrent duplicate is fine; the name the user typed is used either way.
func (b *Bot) avanceTipoNuevoText(ctx context.Context, chatID, userID int64, sess *Session, nombre string) {
	if err := b.Trabajos.Add(ctx, nombre); err != nil && !errors.Is(err, data.ErrDuplicate) {
		b.Logger.WithField("error", err.Error()).Error("Failed to add work type")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if sess.Avance == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	sess.Avance.Trabajo = nombre
	b.promptAvanceEstado(chatID, sess)
}

func (b *Bot) promptAvanceEstado(chatID int64, sess *Session) {
	sess.State = StateAvanceEstado
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚧 En Curso", cbEstadoEnCurso),
			tgbotapi.NewInlineKeyboardButtonData("✅ Finalizado", cbEstadoFinal),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "¿En qué estado queda el trabajo?", kb)
}

func (b *Bot) avanceEstadoChosen(chatID int64, sess *Session, estado string) {
	if sess.State != StateAvanceEstado || sess.Avance == nil {
		b.send(chatID, "Esa selección ya no corresponde a ninguna operación en curso.")
		return
	}
	sess.Avance.Estado = estado
	sess.State = StateAvanceFecha

	now := b.Calendar.Now()
	sess.CalYear, sess.CalMonth = now.Year(), int(now.Month())
	b.sendKeyboard(chatID, "¿Qué día se realizó el trabajo?",
		b.Calendar.Render(sess.CalYear, sess.CalMonth, true))
}

func (b *Bot) avanceFechaChosen(ctx context.Context, chatID, userID int64, sess *Session, date time.Time) {
	if sess.Avance == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	sess.Avance.Fecha = date
	sess.State = StateAvanceFoto

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Sin foto", cbSkipFoto),
		),
		cancelRow(),
	)
	b.sendKeyboard(chatID, "Envía una foto del trabajo, o continúa sin ella.", kb)
}

func (b *Bot) avancePhoto(ctx context.Context, chatID, userID int64, sess *Session, m *tgbotapi.Message) {
	bytes, err := b.downloadPhoto(m)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to download avance photo")
		b.send(chatID, "No he podido descargar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	path, err := b.Photos.Save(storage.PhotoAvance, userID, bytes)
	if err != nil {
		b.send(chatID, "No he podido guardar la foto. Envíala de nuevo o continúa sin ella.")
		return
	}
	b.avanceFotoDone(chatID, sess, path)
}

// avanceFotoDone closes the photo step and shows the confirmation summary.
func (b *Bot) avanceFotoDone(chatID int64, sess *Session, fotoPath string) {
	if sess.Avance == nil {
		return
	}
	sess.Avance.FotoPath = fotoPath
	sess.State = StateAvanceConfirm

	foto := "sin foto"
	if fotoPath != "" {
		foto = "adjunta"
	}
	resumen := fmt.Sprintf(
		"Revisa el avance:\n\n📍 Ubicación: %s\n🔨 Trabajo: %s\n📊 Estado: %s\n📅 Fecha: %s\n📷 Foto: %s",
		sess.Avance.Ubicacion, sess.Avance.Trabajo, sess.Avance.Estado,
		sess.Avance.Fecha.Format("02/01/2006"), foto)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirmar", cbConfirm),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", cbCancel),
		),
	)
	b.sendKeyboard(chatID, resumen, kb)
}

// avanceConfirm persists the draft and, for finished work, broadcasts it
// to the group chat with the photo attached.
func (b *Bot) avanceConfirm(ctx context.Context, chatID, userID int64, sess *Session) {
	draft := sess.Avance
	if draft == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}

	avance := &models.Avance{
		EncargadoID:       userID,
		UbicacionCompleta: draft.Ubicacion,
		Trabajo:           draft.Trabajo,
		Estado:            draft.Estado,
		FechaTrabajo:      draft.Fecha,
		FotoPath:          draft.FotoPath,
	}
	id, err := b.Avances.Create(ctx, avance)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to create avance")
		b.send(chatID, "No se ha podido registrar el avance. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("✅ Avance #%d registrado.", id))

	if draft.Estado == constants.AvanceFinalizado {
		texto := fmt.Sprintf("🏗 *Trabajo finalizado*\n📍 %s\n🔨 %s\n📅 %s",
			util.EscapeMarkdown(draft.Ubicacion),
			util.EscapeMarkdown(draft.Trabajo),
			util.EscapeMarkdown(draft.Fecha.Format("02/01/2006")))
		foto, _ := b.Photos.Open(draft.FotoPath)
		b.Broadcast.Send(texto, foto)
	}
	b.sendMenu(ctx, chatID, userID)
}

// showAvancesPage renders one page of finished avances. The page index is
// clamped against the fresh total, so a stale tap lands on the last page.
func (b *Bot) showAvancesPage(ctx context.Context, chatID int64, sess *Session) {
	avances, totalPages, err := b.Avances.GetFinalizadosPaginated(ctx, sess.Page, constants.ItemsPerPage)
	if err != nil {
		b.Logger.WithField("error", err.Error()).Error("Failed to list finished avances")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}
	if clamped := ui.ClampPage(sess.Page, totalPages); clamped != sess.Page {
		sess.Page = clamped
		avances, totalPages, err = b.Avances.GetFinalizadosPaginated(ctx, sess.Page, constants.ItemsPerPage)
		if err != nil {
			b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
			return
		}
	}
	if len(avances) == 0 {
		b.sendKeyboard(chatID, "No hay avances finalizados todavía.",
			tgbotapi.NewInlineKeyboardMarkup(backToMenuRow()))
		return
	}

	page := ui.Page{Index: sess.Page, TotalPages: totalPages}
	for _, a := range avances {
		label := fmt.Sprintf("%s | %s (%s)",
			util.Truncate(a.UbicacionCompleta, 28), util.Truncate(a.Trabajo, 18),
			a.FechaTrabajo.Format("02/01"))
		page.Items = append(page.Items, ui.PageItem{
			Label:    label,
			Callback: fmt.Sprintf("view_avance_%d", a.ID),
		})
	}

	texto := fmt.Sprintf("Avances finalizados (página %d/%d):", sess.Page+1, totalPages)
	b.sendKeyboard(chatID, texto, page.Keyboard(cbPagePrev, cbPageNext, "🔙 Menú Principal", cbMenu))
}

// viewAvance shows the full detail of one avance with its actions.
func (b *Bot) viewAvance(ctx context.Context, chatID, userID int64, avanceID int64) {
	avance, err := b.Avances.GetByID(ctx, avanceID)
	if errors.Is(err, data.ErrNotFound) {
		b.send(chatID, "Ese avance ya no existe.")
		return
	}
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"avance_id": avanceID,
			"error":     err.Error(),
		}).Error("Failed to load avance")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	detalle := fmt.Sprintf(
		"Avance #%d\n\n📍 Ubicación: %s\n🔨 Trabajo: %s\n📊 Estado: %s\n📅 Fecha: %s\n👷 Encargado: %s",
		avance.ID, avance.UbicacionCompleta, avance.Trabajo, avance.Estado,
		avance.FechaTrabajo.Format("02/01/2006"), avance.EncargadoName)

	var rows [][]tgbotapi.InlineKeyboardButton
	if avance.FotoPath != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Ver Foto", fmt.Sprintf("ver_foto_avance_%d", avance.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⚠️ Reportar Incidencia", fmt.Sprintf("reportinc_%d", avance.ID)),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Volver a la lista", cbVerAvances),
	))
	rows = append(rows, backToMenuRow())

	b.sendKeyboard(chatID, detalle, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) sendAvanceFoto(ctx context.Context, chatID int64, avanceID int64) {
	path, err := b.Avances.GetFotoPath(ctx, avanceID)
	if err != nil {
		b.send(chatID, "No se ha encontrado la foto de ese avance.")
		return
	}
	foto, ok := b.Photos.Open(path)
	if !ok {
		b.send(chatID, "La foto de ese avance ya no está disponible.")
		return
	}
	b.sendPhoto(chatID, fmt.Sprintf("Foto del avance #%d", avanceID), foto)
}

// startAvanceIncidencia asks for the description of an issue found on a
// finished avance.
func (b *Bot) startAvanceIncidencia(chatID int64, sess *Session, avanceID int64) {
	sess.State = StateIncidenciaDesc
	sess.TargetID = avanceID
	b.sendKeyboard(chatID, "Describe la incidencia encontrada:",
		tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
}

func (b *Bot) incidenciaDescText(ctx context.Context, chatID, userID int64, sess *Session, text string) {
	avanceID := sess.TargetID
	id, err := b.Incidencias.CreateForAvance(ctx, avanceID, userID, text)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"avance_id": avanceID,
			"error":     err.Error(),
		}).Error("Failed to create incidencia")
		b.send(chatID, "No se ha podido registrar la incidencia. Inténtalo de nuevo.")
		return
	}

	b.Sessions.Reset(userID)
	b.send(chatID, fmt.Sprintf("⚠️ Incidencia #%d registrada.", id))
	b.notifyRole(ctx, constants.RoleTecnico,
		fmt.Sprintf("⚠️ Nueva incidencia #%d sobre el avance #%d: %s", id, avanceID, text))
	b.sendMenu(ctx, chatID, userID)
}
