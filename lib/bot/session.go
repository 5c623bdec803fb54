package bot

import (
	"sync"
	"time"

	"obrabot/lib/models"
	"obrabot/lib/ui"
)

// State identifies which wizard step, if any, the next message from a user
// belongs to. Idle means free text is ignored and only menu taps count.
type State int

const (
	StateIdle State = iota

	// Avance registration.
	StateAvanceWalk
	StateAvanceTipo
	StateAvanceTipoNuevo
	StateAvanceEstado
	StateAvanceFecha
	StateAvanceFoto
	StateAvanceConfirm

	// Incidencia on a finished avance.
	StateIncidenciaDesc

	// Location management.
	StateUbicacionAdd
	StateUbicacionRename

	// Warehouse item creation and edits.
	StateAlmacenNombre
	StateAlmacenCantidad
	StateAlmacenTipo
	StateAlmacenDesc
	StateAlmacenEditCantidad
	StateAlmacenEditNombre
	StateAlmacenEditDesc

	// Material requests.
	StatePedidoCantidad
	StatePedidoNotas
	StatePedidoDecision

	// Machine breakdowns.
	StateAveriaMaquina
	StateAveriaDesc
	StateAveriaFoto

	// Tool incidencias.
	StateToolIncDesc
	StateToolIncFoto

	// Resolution text for avance and tool incidencias.
	StateIncResolucion

	// Safety reports.
	StatePrevUbicacion
	StatePrevDesc
	StatePrevFoto
	StatePrevComentario
	StateComunicado

	// Staffing requests.
	StateSolicitudPuesto
	StateSolicitudCantidad
	StateSolicitudFecha
	StateSolicitudNotas
	StateSolicitudDecision
	StateSolicitudNotaRRHH

	// Daily headcount.
	StateRegistroEnObra
	StateRegistroFaltas
	StateRegistroBajas

	// Work orders.
	StateOrdenDesc
	StateOrdenFoto

	// Report generation.
	StateReportWalk
	StateReportStartDate
	StateReportEndDate
)

// AvanceDraft accumulates the avance registration answers until the user
// confirms.
type AvanceDraft struct {
	Ubicacion string
	Trabajo   string
	Estado    string
	Fecha     time.Time
	FotoPath  string
}

// AlmacenDraft holds a warehouse item being created or edited.
type AlmacenDraft struct {
	Nombre   string
	Cantidad int
	Tipo     string
}

// PedidoDraft accumulates the items of a material request.
type PedidoDraft struct {
	Items           []models.PedidoItem
	CurrentItemID   int64
	CurrentItemName string
}

// SolicitudDraft accumulates the puestos of a staffing request.
type SolicitudDraft struct {
	Puestos       []models.SolicitudItem
	CurrentPuesto string
	Fecha         time.Time
}

// RegistroDraft holds the partial daily headcount entry.
type RegistroDraft struct {
	EnObra int
	Faltas int
}

// ReportDraft holds the report wizard answers: which report, the location
// prefix filter and the date range.
type ReportDraft struct {
	Kind   string
	Filter models.AvanceReportFilter
}

// TextDraft covers the two-field flows (machine + description, location +
// description, description + photo) that do not warrant their own type.
type TextDraft struct {
	First  string
	Second string
}

// Session is the per-user conversation state. One instance per Telegram
// user ID, reset whenever a flow finishes or the user cancels.
type Session struct {
	State    State
	Walk     *ui.Walk
	Page     int
	CalYear  int
	CalMonth int
	TargetID int64
	Filter   string
	Pager    string

	Avance    *AvanceDraft
	Almacen   *AlmacenDraft
	Pedido    *PedidoDraft
	Solicitud *SolicitudDraft
	Registro  *RegistroDraft
	Report    *ReportDraft
	Text      *TextDraft
}

// Store keeps sessions keyed by Telegram user ID. Updates are handled
// serially but the reminder scheduler runs on its own goroutine, so access
// is guarded anyway.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for a user, creating an idle one if needed.
func (s *Store) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{}
		s.sessions[userID] = sess
	}
	return sess
}

// Reset discards the user's session and returns a fresh idle one.
func (s *Store) Reset(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{}
	s.sessions[userID] = sess
	return sess
}
