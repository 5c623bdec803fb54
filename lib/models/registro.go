package models

import "time"

// RegistroPersonal is the daily headcount snapshot: workers on site,
// unexcused absences and sick leaves. One row per date, upserted.
type RegistroPersonal struct {
	ID              int64     `json:"id"`
	Fecha           time.Time `json:"fecha"`
	EnObra          int       `json:"en_obra"`
	Faltas          int       `json:"faltas"`
	Bajas           int       `json:"bajas"`
	RegistradoPorID int64     `json:"registrado_por_id"`
	RegistradoPor   string    `json:"registrado_por,omitempty"`
}
