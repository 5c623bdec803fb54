package constants

// Roles reconocidos por el bot. Coinciden con la columna role de usuarios.
const (
	RoleEncargado  = "Encargado"
	RoleTecnico    = "Tecnico"
	RoleGerente    = "Gerente"
	RoleAlmacen    = "Almacen"
	RoleRRHH       = "RRHH"
	RolePrevencion = "Prevencion"
	RoleAdmin      = "Admin"
)

// Pedido lifecycle states.
const (
	PedidoPendiente = "Pendiente Aprobacion"
	PedidoAprobado  = "Aprobado"
	PedidoRechazado = "Rechazado"
	PedidoListo     = "Listo para Recoger"
	PedidoEntregado = "Entregado"
)

// Incidencia states (averías, herramientas and avance-linked reports).
const (
	IncidenciaPendiente = "Pendiente"
	IncidenciaResuelta  = "Resuelta"
)

// Prevención incidencia states.
const (
	PrevencionAbierta   = "Abierta"
	PrevencionEnDisputa = "En Disputa"
	PrevencionCerrada   = "Cerrada"
)

// Solicitud de personal states.
const (
	SolicitudPendiente  = "Pendiente Aprobacion"
	SolicitudAprobada   = "Aprobada"
	SolicitudRechazada  = "Rechazada"
	SolicitudEnBusqueda = "En Busqueda"
	SolicitudCerrada    = "Cerrada"
)

// Orden de trabajo states.
const (
	OrdenPendiente = "Pendiente"
	OrdenRealizada = "Realizada"
)

// Avance states.
const (
	AvanceEnCurso    = "En Curso"
	AvanceFinalizado = "Finalizado"
)

const (
	// DriverName is the database/sql driver registered by lib/pq.
	DriverName = "postgres"

	// ItemsPerPage is the fixed page size for every paginated listing.
	ItemsPerPage = 5

	// PathSeparator joins location level values into ubicacion_completa.
	// The same separator feeds the LIKE prefix filter, so it must not change.
	PathSeparator = " / "
)
