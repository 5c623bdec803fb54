package models

import "time"

// Incidencia is an issue report with a pending → resolved lifecycle.
// Avance-linked reports set AvanceID; tool faults set ItemID. Both live in
// the incidencias table.
type Incidencia struct {
	ID              int64      `json:"id"`
	AvanceID        *int64     `json:"avance_id,omitempty"`
	ItemID          *int64     `json:"item_id,omitempty"`
	ReportaID       int64      `json:"reporta_id"`
	Descripcion     string     `json:"descripcion"`
	FotoPath        string     `json:"foto_path,omitempty"`
	Estado          string     `json:"estado"`
	FechaReporte    time.Time  `json:"fecha_reporte"`
	ResolutorID     *int64     `json:"tecnico_resolutor_id,omitempty"`
	ResolucionDesc  string     `json:"resolucion_desc,omitempty"`
	FechaResolucion *time.Time `json:"fecha_resolucion,omitempty"`

	// Joined display fields.
	ReporterName     string `json:"reporter_name,omitempty"`
	ResolverName     string `json:"resolver_name,omitempty"`
	AvanceUbicacion  string `json:"avance_ubicacion,omitempty"`
	ItemName         string `json:"item_name,omitempty"`
}

// Comentario is a follow-up comment on an incidencia.
type Comentario struct {
	ID           int64     `json:"id"`
	IncidenciaID int64     `json:"incidencia_id"`
	UsuarioID    int64     `json:"usuario_id"`
	Comentario   string    `json:"comentario"`
	Fecha        time.Time `json:"fecha"`
	AutorName    string    `json:"autor_name,omitempty"`
}

// PrevencionIncidencia is a safety-officer incident report with its own
// Abierta → En Disputa → Cerrada lifecycle.
type PrevencionIncidencia struct {
	ID            int64      `json:"id"`
	ReportaID     int64      `json:"reporta_id"`
	Ubicacion     string     `json:"ubicacion"`
	Descripcion   string     `json:"descripcion"`
	FotoPath      string     `json:"foto_path,omitempty"`
	HasFoto       bool       `json:"has_foto"`
	Estado        string     `json:"estado"`
	FechaReporte  time.Time  `json:"fecha_reporte"`
	CerradoPorID  *int64     `json:"cerrado_por_id,omitempty"`
	FechaCierre   *time.Time `json:"fecha_cierre,omitempty"`
	ReporterName  string     `json:"reporter_name,omitempty"`
	ResolutorName string     `json:"resolutor_name,omitempty"`
}

// Averia is a machine breakdown report.
type Averia struct {
	ID           int64     `json:"id"`
	Maquina      string    `json:"maquina"`
	Estado       string    `json:"estado"`
	FechaReporte time.Time `json:"fecha_reporte"`
}
