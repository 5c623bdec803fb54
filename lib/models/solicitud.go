package models

import "time"

// SolicitudPersonal is a staffing request for one or more puestos, routed
// through técnico and gerente approval and then worked by RRHH.
type SolicitudPersonal struct {
	ID                 int64           `json:"id"`
	SolicitanteID      int64           `json:"solicitante_id"`
	FechaIncorporacion time.Time       `json:"fecha_incorporacion"`
	Estado             string          `json:"estado"`
	NotasSolicitud     string          `json:"notas_solicitud,omitempty"`
	NotasDecision      string          `json:"notas_decision,omitempty"`
	FechaSolicitud     time.Time       `json:"fecha_solicitud"`
	TecnicoID          *int64          `json:"tecnico_id,omitempty"`
	GerenteID          *int64          `json:"gerente_id,omitempty"`
	SolicitanteName    string          `json:"solicitante_name,omitempty"`
	TecnicoName        string          `json:"tecnico_name,omitempty"`
	GerenteName        string          `json:"gerente_name,omitempty"`
	Puestos            []SolicitudItem `json:"puestos,omitempty"`
	NotasRRHH          []SolicitudNota `json:"notas_rrhh,omitempty"`

	// PuestosResumen aggregates the puestos as "2x Oficial, 1x Peón" for
	// list rendering.
	PuestosResumen string `json:"puestos_resumen,omitempty"`
}

// SolicitudItem is one requested puesto with its headcount.
type SolicitudItem struct {
	ID          int64  `json:"id"`
	SolicitudID int64  `json:"solicitud_id"`
	Puesto      string `json:"puesto"`
	Cantidad    int    `json:"cantidad"`
}

// SolicitudNota is a free-text RRHH follow-up note on a solicitud.
type SolicitudNota struct {
	ID          int64     `json:"id"`
	SolicitudID int64     `json:"solicitud_id"`
	RRHHID      int64     `json:"rrhh_id"`
	Nota        string    `json:"nota"`
	FechaNota   time.Time `json:"fecha_nota"`
	AutorName   string    `json:"autor_name,omitempty"`
}
