package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"obrabot/lib/constants"
	"obrabot/lib/ui"
)

// Static callback payloads. Menu entries and in-wizard controls share this
// namespace; anything carrying an entity ID goes through the select
// prefixes in callback.go instead.
const (
	cbMenu = "menu"
	cbNoop = "noop"

	cbRegistrarAvance = "registrar_avance"
	cbVerAvances      = "ver_avances"
	cbPedirMaterial   = "pedir_material"
	cbPedidosListos   = "pedidos_listos"
	cbReportarAveria  = "reportar_averia"
	cbSolicitarPers   = "solicitar_personal"
	cbMisSolicitudes  = "mis_solicitudes"
	cbRegistroPers    = "registro_personal"
	cbVerOrdenes      = "ver_ordenes"

	cbVerIncidencias    = "ver_incidencias"
	cbPedidosPendientes = "pedidos_pendientes"
	cbGestUbicaciones   = "gestionar_ubicaciones"
	cbUbicacionAdd      = "ubicacion_add"
	cbCrearOrden        = "crear_orden"
	cbSolPendientes     = "solicitudes_pendientes"
	cbVerAverias        = "ver_averias"
	cbToolIncList       = "toolinc_list"
	cbInformes          = "informes"

	cbMaterialEnObra = "material_en_obra"

	cbPedidosAprobados = "pedidos_aprobados"
	cbGestAlmacen      = "gestionar_almacen"
	cbAlmacenAdd       = "almacen_add"
	cbInventario       = "inventario_completo"
	cbToolIncReport    = "toolinc_report"

	cbSolRRHH = "solicitudes_rrhh"

	cbReportarPrev = "reportar_prevencion"
	cbMisPrev      = "mis_prevencion"
	cbPrevAbiertas = "prevencion_abiertas"
	cbComunicado   = "comunicado"

	cbGestUsuarios = "gestionar_usuarios"

	// In-wizard controls.
	cbWalkBack        = "walk_back"
	cbEstadoEnCurso   = "estado_en_curso"
	cbEstadoFinal     = "estado_finalizado"
	cbTipoNuevo       = "tipotrabajo_nuevo"
	cbSkipFoto        = "skip_foto"
	cbSkipNotas       = "skip_notas"
	cbConfirm         = "confirm"
	cbCancel          = ui.CalCancel
	cbPagePrev        = "page_prev"
	cbPageNext        = "page_next"
	cbAddItem         = "pedido_additem"
	cbFinalizarPedido = "pedido_finalizar"
	cbAddPuesto       = "sol_addpuesto"
	cbFinalizarSol    = "sol_finalizar"
	cbTipoHerramienta = "tipo_herramienta"
	cbTipoMaterial    = "tipo_material"
	cbInformeAvances  = "informe_avances"
	cbInformePersonal = "informe_personal"
	cbFiltroTodos     = "filtro_todos"
	cbFormatoCSV      = "fmt_csv"
	cbFormatoPDF      = "fmt_pdf"

	// Non-numeric selection families, matched by prefix in the handlers.
	cbWalkSelPrefix = "walksel_"
	cbTipoPrefix    = "tipotrabajo_"
	cbUbiTipoPrefix = "ubitipo_"
)

// MenuItem is one entry of a role's root menu.
type MenuItem struct {
	Label    string
	Callback string
}

// roleMenus maps each role to its root menu, in display order.
var roleMenus = map[string][]MenuItem{
	constants.RoleEncargado: {
		{"📈 Registrar Avance", cbRegistrarAvance},
		{"📋 Ver Avances", cbVerAvances},
		{"📦 Pedir Material", cbPedirMaterial},
		{"🛒 Pedidos Listos", cbPedidosListos},
		{"🔧 Reportar Avería", cbReportarAveria},
		{"👷 Solicitar Personal", cbSolicitarPers},
		{"🗂 Mis Solicitudes", cbMisSolicitudes},
		{"🧮 Registrar Personal", cbRegistroPers},
		{"📌 Órdenes de Trabajo", cbVerOrdenes},
	},
	constants.RoleTecnico: {
		{"📋 Ver Avances", cbVerAvances},
		{"⚠️ Incidencias", cbVerIncidencias},
		{"✅ Aprobar Pedidos", cbPedidosPendientes},
		{"🗺 Gestionar Ubicaciones", cbGestUbicaciones},
		{"📌 Crear Orden", cbCrearOrden},
		{"👷 Solicitudes Personal", cbSolPendientes},
		{"🔧 Averías", cbVerAverias},
		{"🛠 Incidencias Herramientas", cbToolIncList},
		{"🛡 Seguridad", cbPrevAbiertas},
		{"📊 Informes", cbInformes},
	},
	constants.RoleGerente: {
		{"📊 Informes", cbInformes},
		{"👷 Solicitudes Personal", cbSolPendientes},
		{"📋 Ver Avances", cbVerAvances},
		{"🚚 Material en Obra", cbMaterialEnObra},
	},
	constants.RoleAlmacen: {
		{"📦 Pedidos Aprobados", cbPedidosAprobados},
		{"🗃 Gestionar Inventario", cbGestAlmacen},
		{"📑 Inventario Completo", cbInventario},
		{"🛠 Incidencia Herramienta", cbToolIncReport},
		{"🔧 Averías", cbVerAverias},
	},
	constants.RoleRRHH: {
		{"👷 Solicitudes en Curso", cbSolRRHH},
	},
	constants.RolePrevencion: {
		{"🛡 Reportar Incidencia", cbReportarPrev},
		{"🗂 Mis Incidencias", cbMisPrev},
		{"🔒 Cerrar Incidencias", cbPrevAbiertas},
		{"📢 Enviar Comunicado", cbComunicado},
	},
	constants.RoleAdmin: {
		{"👥 Gestionar Usuarios", cbGestUsuarios},
		{"📊 Informes", cbInformes},
		{"📋 Ver Avances", cbVerAvances},
		{"🚚 Material en Obra", cbMaterialEnObra},
	},
}

// RootMenu renders the role's main menu, two buttons per row. Unknown or
// unassigned roles get an empty keyboard; the caller shows the "pending
// role" message instead.
func RootMenu(role string) (tgbotapi.InlineKeyboardMarkup, bool) {
	items, ok := roleMenus[role]
	if !ok {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(items); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(items[i].Label, items[i].Callback),
		}
		if i+1 < len(items) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(items[i+1].Label, items[i+1].Callback))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

// backToMenuRow is the standard trailing control of most screens.
func backToMenuRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Menú Principal", cbMenu),
	)
}

// cancelRow offers to abort the wizard in progress.
func cancelRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", cbCancel),
	)
}
