package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
	"obrabot/lib/models"
)

// Pager contexts: which listing the page_prev/page_next controls belong to.
const (
	pagerAvances     = "avances"
	pagerAlmacen     = "almacen"
	pagerPedidoItems = "pedido_items"
	pagerToolItems   = "tool_items"
	pagerUsuarios    = "usuarios"
)

// Run consumes the long-poll update stream until ctx is cancelled. Updates
// are handled serially; ordering within a chat matters more than
// throughput at site-crew scale.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.API.GetUpdatesChan(u)

	b.Logger.WithField("bot", b.API.Self.UserName).Info("Bot started, polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			b.Logger.Info("Bot stopped")
			return
		case update := <-updates:
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate routes one update. A panic in any handler is recovered,
// logged with the update's correlation ID and answered with a generic
// error so one bad update cannot kill the loop.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := b.Logger.WithField("update_id", uuid.New().String())

	var chatID int64
	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID = update.CallbackQuery.Message.Chat.ID
	}

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Recovered from panic in update handler")
			if chatID != 0 {
				b.send(chatID, "Ha ocurrido un error inesperado. Vuelve al menú con /start.")
			}
		}
	}()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message, log)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery, log)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message, log *logrus.Entry) {
	if m.From == nil || !m.Chat.IsPrivate() {
		return
	}
	userID := m.From.ID
	chatID := m.Chat.ID
	log = log.WithField("user_id", userID)

	if m.IsCommand() {
		switch m.Command() {
		case "start":
			b.handleStart(ctx, m, log)
		case "cancel":
			b.Sessions.Reset(userID)
			b.send(chatID, "Operación cancelada.")
			b.sendMenu(ctx, chatID, userID)
		default:
			b.send(chatID, "Comando no reconocido. Usa /start.")
		}
		return
	}

	sess := b.Sessions.Get(userID)

	if len(m.Photo) > 0 {
		b.handlePhoto(ctx, m, sess, log)
		return
	}

	text := strings.TrimSpace(m.Text)
	if text == "" {
		return
	}
	b.handleText(ctx, chatID, userID, sess, text, log)
}

// handleStart registers first-time users and shows the role menu. New
// users land without a role and the admins are pinged to assign one.
func (b *Bot) handleStart(ctx context.Context, m *tgbotapi.Message, log *logrus.Entry) {
	userID := m.From.ID
	chatID := m.Chat.ID
	b.Sessions.Reset(userID)

	existing, err := b.Users.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, data.ErrNotFound) {
		log.WithField("error", err.Error()).Error("Failed to look up user on /start")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	user := &models.Usuario{
		ID:        userID,
		FirstName: m.From.FirstName,
		Username:  m.From.UserName,
	}
	if existing != nil {
		user.Role = existing.Role
	}
	if err := b.Users.Upsert(ctx, user); err != nil {
		log.WithField("error", err.Error()).Error("Failed to upsert user on /start")
		b.send(chatID, "Error interno. Inténtalo de nuevo más tarde.")
		return
	}

	if existing == nil {
		log.Info("New user registered, notifying admins")
		b.notifyRole(ctx, constants.RoleAdmin,
			"Nuevo usuario registrado: "+user.FirstName+". Asígnale un rol desde Gestionar Usuarios.")
	}
	b.sendMenu(ctx, chatID, userID)
}

// handleText routes free text to the wizard step awaiting it.
func (b *Bot) handleText(ctx context.Context, chatID, userID int64, sess *Session, text string, log *logrus.Entry) {
	switch sess.State {
	case StateAvanceTipoNuevo:
		b.avanceTipoNuevoText(ctx, chatID, userID, sess, text)
	case StateIncidenciaDesc:
		b.incidenciaDescText(ctx, chatID, userID, sess, text)
	case StateUbicacionAdd:
		b.ubicacionAddText(ctx, chatID, userID, sess, text)
	case StateUbicacionRename:
		b.ubicacionRenameText(ctx, chatID, userID, sess, text)
	case StateAlmacenNombre:
		b.almacenNombreText(ctx, chatID, sess, text)
	case StateAlmacenCantidad:
		b.almacenCantidadText(ctx, chatID, sess, text)
	case StateAlmacenDesc:
		b.almacenDescText(ctx, chatID, userID, sess, text)
	case StateAlmacenEditCantidad:
		b.almacenEditCantidadText(ctx, chatID, userID, sess, text)
	case StateAlmacenEditNombre:
		b.almacenEditNombreText(ctx, chatID, sess, text)
	case StateAlmacenEditDesc:
		b.almacenEditDescText(ctx, chatID, userID, sess, text)
	case StatePedidoCantidad:
		b.pedidoCantidadText(ctx, chatID, sess, text)
	case StatePedidoNotas:
		b.pedidoNotasText(ctx, chatID, userID, sess, text)
	case StatePedidoDecision:
		b.pedidoDecisionText(ctx, chatID, userID, sess, text)
	case StateAveriaMaquina:
		b.averiaMaquinaText(ctx, chatID, sess, text)
	case StateAveriaDesc:
		b.averiaDescText(ctx, chatID, sess, text)
	case StateToolIncDesc:
		b.toolIncDescText(ctx, chatID, sess, text)
	case StateIncResolucion:
		b.incResolucionText(ctx, chatID, userID, sess, text)
	case StatePrevUbicacion:
		b.prevUbicacionText(ctx, chatID, sess, text)
	case StatePrevDesc:
		b.prevDescText(ctx, chatID, sess, text)
	case StatePrevComentario:
		b.prevComentarioText(ctx, chatID, userID, sess, text)
	case StateComunicado:
		b.comunicadoText(ctx, chatID, userID, sess, text)
	case StateSolicitudPuesto:
		b.solicitudPuestoText(ctx, chatID, sess, text)
	case StateSolicitudCantidad:
		b.solicitudCantidadText(ctx, chatID, sess, text)
	case StateSolicitudNotas:
		b.solicitudNotasText(ctx, chatID, userID, sess, text)
	case StateSolicitudDecision:
		b.solicitudDecisionText(ctx, chatID, userID, sess, text)
	case StateSolicitudNotaRRHH:
		b.solicitudNotaRRHHText(ctx, chatID, userID, sess, text)
	case StateRegistroEnObra:
		b.registroEnObraText(ctx, chatID, sess, text)
	case StateRegistroFaltas:
		b.registroFaltasText(ctx, chatID, sess, text)
	case StateRegistroBajas:
		b.registroBajasText(ctx, chatID, userID, sess, text)
	case StateOrdenDesc:
		b.ordenDescText(ctx, chatID, sess, text)
	default:
		log.Debug("Free text outside any wizard, ignored")
		b.send(chatID, "Usa los botones del menú. Vuelve con /start.")
	}
}

// handlePhoto routes an uploaded photo to the wizard step awaiting it.
func (b *Bot) handlePhoto(ctx context.Context, m *tgbotapi.Message, sess *Session, log *logrus.Entry) {
	chatID := m.Chat.ID
	userID := m.From.ID

	switch sess.State {
	case StateAvanceFoto:
		b.avancePhoto(ctx, chatID, userID, sess, m)
	case StateAveriaFoto:
		b.averiaPhoto(ctx, chatID, userID, sess, m)
	case StateToolIncFoto:
		b.toolIncPhoto(ctx, chatID, userID, sess, m)
	case StatePrevFoto:
		b.prevPhoto(ctx, chatID, userID, sess, m)
	case StateOrdenFoto:
		b.ordenPhoto(ctx, chatID, userID, sess, m)
	default:
		log.Debug("Photo outside any wizard, ignored")
		b.send(chatID, "No esperaba una foto ahora. Usa los botones del menú.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery, log *logrus.Entry) {
	if q.Message == nil || q.From == nil {
		return
	}
	chatID := q.Message.Chat.ID
	userID := q.From.ID
	sess := b.Sessions.Get(userID)
	log = log.WithFields(logrus.Fields{"user_id": userID, "callback": q.Data})

	// Dismiss the client-side spinner first; the reply comes as a new message.
	if _, err := b.API.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		log.WithField("error", err.Error()).Warn("Failed to answer callback query")
	}

	action := Decode(q.Data)
	switch action.Kind {
	case ActionCalIgnore:
		return
	case ActionCalDay:
		b.dateChosen(ctx, chatID, userID, sess,
			time.Date(action.Year, time.Month(action.Month), action.Day, 0, 0, 0, 0, time.UTC))
	case ActionCalToday:
		now := b.Calendar.Now()
		b.dateChosen(ctx, chatID, userID, sess,
			time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	case ActionCalNav:
		sess.CalYear, sess.CalMonth = navigateCalendar(action)
		b.sendKeyboard(chatID, "Elige una fecha:", b.Calendar.Render(sess.CalYear, sess.CalMonth, action.AllowPast))
	case ActionSetRole:
		b.setUserRole(ctx, chatID, userID, sess, action.Role)
	case ActionSelect:
		b.handleSelect(ctx, chatID, userID, sess, action, log)
	default:
		b.handleStatic(ctx, chatID, userID, sess, action.Raw, log)
	}
}

func navigateCalendar(a Action) (int, int) {
	switch a.Direction {
	case "prev":
		if a.Month == 1 {
			return a.Year - 1, 12
		}
		return a.Year, a.Month - 1
	default:
		if a.Month == 12 {
			return a.Year + 1, 1
		}
		return a.Year, a.Month + 1
	}
}

// dateChosen forwards a calendar pick to whichever wizard is waiting for a
// date.
func (b *Bot) dateChosen(ctx context.Context, chatID, userID int64, sess *Session, date time.Time) {
	switch sess.State {
	case StateAvanceFecha:
		b.avanceFechaChosen(ctx, chatID, userID, sess, date)
	case StateSolicitudFecha:
		b.solicitudFechaChosen(ctx, chatID, userID, sess, date)
	case StateReportStartDate:
		b.reportStartChosen(ctx, chatID, sess, date)
	case StateReportEndDate:
		b.reportEndChosen(ctx, chatID, userID, sess, date)
	default:
		b.send(chatID, "Esa fecha ya no corresponde a ninguna operación en curso.")
	}
}

// handleSelect routes entity-ID callbacks.
func (b *Bot) handleSelect(ctx context.Context, chatID, userID int64, sess *Session, a Action, log *logrus.Entry) {
	switch a.Prefix {
	case "view_avance":
		b.viewAvance(ctx, chatID, userID, a.ID)
	case "ver_foto_avance":
		b.sendAvanceFoto(ctx, chatID, a.ID)
	case "reportinc":
		b.startAvanceIncidencia(chatID, sess, a.ID)
	case "inc_view":
		b.viewIncidencia(ctx, chatID, userID, a.ID)
	case "inc_resolve":
		b.startIncResolucion(chatID, sess, a.ID, "")
	case "ver_foto_incidencia":
		b.sendIncidenciaFoto(ctx, chatID, a.ID)
	case "view_pedido":
		b.viewPedido(ctx, chatID, userID, a.ID)
	case "aprobar":
		b.startPedidoDecision(chatID, sess, a.ID, constants.PedidoAprobado)
	case "rechazar":
		b.startPedidoDecision(chatID, sess, a.ID, constants.PedidoRechazado)
	case "pedido_listo":
		b.markPedidoListo(ctx, chatID, userID, a.ID)
	case "pedido_entregado":
		b.markPedidoEntregado(ctx, chatID, userID, a.ID)
	case "pedido_item":
		b.pedidoItemChosen(ctx, chatID, sess, a.ID)
	case "view_item":
		b.viewAlmacenItem(ctx, chatID, a.ID)
	case "item_qty":
		b.startAlmacenEditCantidad(chatID, sess, a.ID)
	case "item_name":
		b.startAlmacenEditNombre(chatID, sess, a.ID)
	case "item_del":
		b.deleteAlmacenItem(ctx, chatID, userID, a.ID)
	case "toolinc_item":
		b.toolIncItemChosen(chatID, sess, a.ID)
	case "toolinc_view":
		b.viewToolInc(ctx, chatID, userID, a.ID)
	case "resolve_toolinc":
		b.startIncResolucion(chatID, sess, a.ID, "tool")
	case "view_solicitud":
		b.viewSolicitud(ctx, chatID, userID, a.ID)
	case "sol_aprobar":
		b.startSolicitudDecision(ctx, chatID, userID, sess, a.ID, true)
	case "sol_rechazar":
		b.startSolicitudDecision(ctx, chatID, userID, sess, a.ID, false)
	case "sol_nota":
		b.startSolicitudNotaRRHH(chatID, sess, a.ID)
	case "sol_cerrar":
		b.closeSolicitud(ctx, chatID, userID, a.ID)
	case "prev_view":
		b.viewPrev(ctx, chatID, userID, a.ID)
	case "prev_comment":
		b.startPrevComentario(chatID, sess, a.ID)
	case "prev_close":
		b.closePrev(ctx, chatID, userID, a.ID)
	case "prev_photo":
		b.sendPrevFoto(ctx, chatID, a.ID)
	case "view_orden":
		b.viewOrden(ctx, chatID, userID, a.ID)
	case "resolve_orden":
		b.resolveOrden(ctx, chatID, userID, a.ID)
	case "ver_foto_orden":
		b.sendOrdenFoto(ctx, chatID, a.ID)
	case "averia_resolve":
		b.resolveAveria(ctx, chatID, userID, a.ID)
	case "mngrole_user":
		b.showRoleKeyboard(ctx, chatID, sess, a.ID)
	case "ubicacion_del":
		b.deleteUbicacion(ctx, chatID, sess, a.ID)
	case "ubicacion_ren":
		b.startUbicacionRename(chatID, sess, a.ID)
	default:
		log.Warn("Unhandled select callback")
	}
}

// handleStatic routes fixed payloads: root menu entries and in-wizard
// controls without an entity ID.
func (b *Bot) handleStatic(ctx context.Context, chatID, userID int64, sess *Session, data string, log *logrus.Entry) {
	// Prefix families carrying a string value.
	switch {
	case strings.HasPrefix(data, cbWalkSelPrefix):
		b.walkSelect(ctx, chatID, userID, sess, strings.TrimPrefix(data, cbWalkSelPrefix))
		return
	case data == cbTipoNuevo:
		sess.State = StateAvanceTipoNuevo
		b.sendKeyboard(chatID, "Escribe el nombre del nuevo tipo de trabajo:",
			tgbotapi.NewInlineKeyboardMarkup(cancelRow()))
		return
	case strings.HasPrefix(data, cbTipoPrefix):
		b.avanceTipoChosen(ctx, chatID, userID, sess, strings.TrimPrefix(data, cbTipoPrefix))
		return
	case strings.HasPrefix(data, cbUbiTipoPrefix):
		b.showUbicacionesOfTipo(ctx, chatID, sess, strings.TrimPrefix(data, cbUbiTipoPrefix))
		return
	}

	switch data {
	case cbNoop:
		return
	case cbMenu:
		b.Sessions.Reset(userID)
		b.sendMenu(ctx, chatID, userID)
	case cbCancel:
		b.Sessions.Reset(userID)
		b.send(chatID, "Operación cancelada.")
		b.sendMenu(ctx, chatID, userID)
	case cbWalkBack:
		b.walkBack(ctx, chatID, userID, sess)
	case cbPagePrev:
		b.pageNav(ctx, chatID, userID, sess, -1)
	case cbPageNext:
		b.pageNav(ctx, chatID, userID, sess, +1)

	case cbRegistrarAvance:
		b.startAvance(ctx, chatID, userID, sess)
	case cbVerAvances:
		sess.Page = 0
		sess.Pager = pagerAvances
		b.showAvancesPage(ctx, chatID, sess)
	case cbEstadoEnCurso:
		b.avanceEstadoChosen(chatID, sess, constants.AvanceEnCurso)
	case cbEstadoFinal:
		b.avanceEstadoChosen(chatID, sess, constants.AvanceFinalizado)
	case cbSkipFoto:
		b.skipFoto(ctx, chatID, userID, sess)
	case cbConfirm:
		b.confirm(ctx, chatID, userID, sess)

	case cbVerIncidencias:
		b.listIncidencias(ctx, chatID)
	case cbGestUbicaciones:
		b.showUbicacionTipos(ctx, chatID)
	case cbUbicacionAdd:
		b.startUbicacionAdd(chatID, sess)

	case cbGestAlmacen:
		sess.Page = 0
		sess.Pager = pagerAlmacen
		b.showAlmacenPage(ctx, chatID, sess)
	case cbAlmacenAdd:
		b.startAlmacenAdd(chatID, sess)
	case cbTipoHerramienta:
		b.almacenTipoChosen(ctx, chatID, userID, sess, "Herramienta")
	case cbTipoMaterial:
		b.almacenTipoChosen(ctx, chatID, userID, sess, "Material")
	case cbInventario:
		b.sendInventarioCompleto(ctx, chatID)
	case cbMaterialEnObra:
		b.sendMaterialEnObra(ctx, chatID)

	case cbPedirMaterial:
		b.startPedido(ctx, chatID, sess)
	case cbAddItem:
		sess.State = StateIdle
		sess.Pager = pagerPedidoItems
		b.showPedidoItemsPage(ctx, chatID, sess)
	case cbFinalizarPedido:
		b.promptPedidoNotas(chatID, sess)
	case cbSkipNotas:
		b.skipNotas(ctx, chatID, userID, sess)
	case cbPedidosPendientes:
		b.listPedidos(ctx, chatID, constants.PedidoPendiente)
	case cbPedidosAprobados:
		b.listPedidos(ctx, chatID, constants.PedidoAprobado)
	case cbPedidosListos:
		b.listPedidosListos(ctx, chatID, userID)

	case cbReportarAveria:
		b.startAveria(chatID, sess)
	case cbVerAverias:
		b.listAverias(ctx, chatID)
	case cbToolIncReport:
		b.startToolInc(ctx, chatID, sess)
	case cbToolIncList:
		b.listToolIncs(ctx, chatID)

	case cbReportarPrev:
		b.startPrev(chatID, sess)
	case cbMisPrev:
		b.listMisPrev(ctx, chatID, userID)
	case cbPrevAbiertas:
		b.listPrevAbiertas(ctx, chatID, userID)
	case cbComunicado:
		b.startComunicado(chatID, sess)

	case cbSolicitarPers:
		b.startSolicitud(chatID, sess)
	case cbAddPuesto:
		b.promptPuesto(chatID, sess)
	case cbFinalizarSol:
		b.promptSolicitudFecha(chatID, sess)
	case cbMisSolicitudes:
		b.listMisSolicitudes(ctx, chatID, userID)
	case cbSolPendientes:
		b.listSolicitudesPendientes(ctx, chatID, userID)
	case cbSolRRHH:
		b.listSolicitudesRRHH(ctx, chatID)

	case cbRegistroPers:
		b.startRegistro(ctx, chatID, sess)

	case cbCrearOrden:
		b.startOrden(chatID, sess)
	case cbVerOrdenes:
		b.listOrdenes(ctx, chatID, userID)

	case cbInformes:
		b.showInformesMenu(chatID)
	case cbInformeAvances:
		b.startInformeAvances(ctx, chatID, sess)
	case cbInformePersonal:
		b.startInformePersonal(chatID, sess)
	case cbFiltroTodos:
		b.walkSelect(ctx, chatID, userID, sess, "")
	case cbFormatoCSV:
		b.generateReport(ctx, chatID, sess, "csv")
	case cbFormatoPDF:
		b.generateReport(ctx, chatID, sess, "pdf")

	case cbGestUsuarios:
		sess.Page = 0
		sess.Pager = pagerUsuarios
		b.showUsuariosPage(ctx, chatID, sess)

	default:
		log.Warn("Unhandled static callback")
		b.sendMenu(ctx, chatID, userID)
	}
}

// walkSelect forwards a hierarchy pick to the wizard owning the walk.
func (b *Bot) walkSelect(ctx context.Context, chatID, userID int64, sess *Session, value string) {
	switch sess.State {
	case StateAvanceWalk:
		b.avanceWalkSelect(ctx, chatID, userID, sess, value)
	case StateReportWalk:
		b.reportWalkSelect(ctx, chatID, sess, value)
	default:
		b.send(chatID, "Esa selección ya no corresponde a ninguna operación en curso.")
	}
}

// walkBack pops one hierarchy level, or returns to the menu from the root.
func (b *Bot) walkBack(ctx context.Context, chatID, userID int64, sess *Session) {
	if sess.Walk == nil {
		b.sendMenu(ctx, chatID, userID)
		return
	}
	if sess.Walk.Back() {
		b.Sessions.Reset(userID)
		b.sendMenu(ctx, chatID, userID)
		return
	}
	b.promptWalkLevel(ctx, chatID, sess)
}

// skipFoto advances whichever wizard is at its optional photo step.
func (b *Bot) skipFoto(ctx context.Context, chatID, userID int64, sess *Session) {
	switch sess.State {
	case StateAvanceFoto:
		b.avanceFotoDone(chatID, sess, "")
	case StateAveriaFoto:
		b.averiaDone(ctx, chatID, userID, sess, "")
	case StateToolIncFoto:
		b.toolIncDone(ctx, chatID, userID, sess, "")
	case StatePrevFoto:
		b.prevDone(ctx, chatID, userID, sess, "")
	case StateOrdenFoto:
		b.ordenDone(ctx, chatID, userID, sess, "")
	default:
		b.send(chatID, "No hay ninguna foto pendiente.")
	}
}

// skipNotas advances whichever wizard is at its optional notes step.
func (b *Bot) skipNotas(ctx context.Context, chatID, userID int64, sess *Session) {
	switch sess.State {
	case StatePedidoNotas:
		b.pedidoNotasText(ctx, chatID, userID, sess, "")
	case StatePedidoDecision:
		b.pedidoDecisionText(ctx, chatID, userID, sess, "")
	case StateSolicitudNotas:
		b.solicitudNotasText(ctx, chatID, userID, sess, "")
	case StateSolicitudDecision:
		b.solicitudDecisionText(ctx, chatID, userID, sess, "")
	default:
		b.send(chatID, "No hay ninguna nota pendiente.")
	}
}

// confirm executes the final step of the wizard waiting on confirmation.
func (b *Bot) confirm(ctx context.Context, chatID, userID int64, sess *Session) {
	switch sess.State {
	case StateAvanceConfirm:
		b.avanceConfirm(ctx, chatID, userID, sess)
	default:
		b.send(chatID, "No hay ninguna operación pendiente de confirmar.")
	}
}

// stepPage moves a page index by delta, never below zero. The upper bound
// is clamped by each pager against a fresh count, but the offset must be
// valid before the first query runs or PostgreSQL rejects it.
func stepPage(page, delta int) int {
	page += delta
	if page < 0 {
		return 0
	}
	return page
}

// pageNav moves the active listing one page and re-renders it.
func (b *Bot) pageNav(ctx context.Context, chatID, userID int64, sess *Session, delta int) {
	sess.Page = stepPage(sess.Page, delta)
	switch sess.Pager {
	case pagerAvances:
		b.showAvancesPage(ctx, chatID, sess)
	case pagerAlmacen:
		b.showAlmacenPage(ctx, chatID, sess)
	case pagerPedidoItems:
		b.showPedidoItemsPage(ctx, chatID, sess)
	case pagerToolItems:
		b.showToolItemsPage(ctx, chatID, sess)
	case pagerUsuarios:
		b.showUsuariosPage(ctx, chatID, sess)
	default:
		b.sendMenu(ctx, chatID, userID)
	}
}
