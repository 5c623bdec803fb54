package models

import "time"

// Avance is a logged unit of completed work tied to a location and date.
// The location is stored both split into its level columns and as the
// slash-joined ubicacion_completa string used for display and LIKE filtering.
type Avance struct {
	ID                 int64     `json:"id"`
	EncargadoID        int64     `json:"encargado_id"`
	UbicacionEdificio  string    `json:"ubicacion_edificio"`
	UbicacionPlanta    string    `json:"ubicacion_planta"`
	UbicacionZona      string    `json:"ubicacion_zona"`
	UbicacionTrabajo   string    `json:"ubicacion_trabajo"`
	UbicacionCompleta  string    `json:"ubicacion_completa"`
	Trabajo            string    `json:"trabajo"`
	FotoPath           string    `json:"foto_path,omitempty"`
	Estado             string    `json:"estado"`
	FechaRegistro      time.Time `json:"fecha_registro"`
	FechaTrabajo       time.Time `json:"fecha_trabajo"`
	EncargadoName      string    `json:"encargado_name,omitempty"`
	EncargadoUsername  string    `json:"encargado_username,omitempty"`
}

// AvanceResumen is the short form rendered as one pagination button.
type AvanceResumen struct {
	ID                int64     `json:"id"`
	Trabajo           string    `json:"trabajo"`
	UbicacionCompleta string    `json:"ubicacion_completa"`
	FechaTrabajo      time.Time `json:"fecha_trabajo"`
}

// AvanceReportFilter narrows the avance report query. Location levels are
// prefix-combined in hierarchy order; both dates must be set to filter by
// range.
type AvanceReportFilter struct {
	Edificio  string
	Planta    string
	Zona      string
	Trabajo   string
	StartDate *time.Time
	EndDate   *time.Time
}
