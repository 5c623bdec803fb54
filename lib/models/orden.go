package models

import "time"

// OrdenTrabajo is a free-form work order with an optional photo and a
// Pendiente → Realizada lifecycle.
type OrdenTrabajo struct {
	ID              int64      `json:"id"`
	CreadorID       int64      `json:"creador_id"`
	Descripcion     string     `json:"descripcion"`
	FotoPath        string     `json:"foto_path,omitempty"`
	Estado          string     `json:"estado"`
	FechaCreacion   time.Time  `json:"fecha_creacion"`
	ResolutorID     *int64     `json:"resolutor_id,omitempty"`
	FechaResolucion *time.Time `json:"fecha_resolucion,omitempty"`
	CreadorName     string     `json:"creador_name,omitempty"`
	ResolutorName   string     `json:"resolutor_name,omitempty"`
}
