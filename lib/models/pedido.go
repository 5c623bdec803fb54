package models

import "time"

// Pedido is a material request routed through request → approval →
// preparation → delivery stages.
type Pedido struct {
	ID              int64      `json:"id"`
	SolicitanteID   int64      `json:"solicitante_id"`
	Estado          string     `json:"estado"`
	NotasSolicitud  string     `json:"notas_solicitud,omitempty"`
	NotasDecision   string     `json:"notas_decision,omitempty"`
	FechaSolicitud  time.Time  `json:"fecha_solicitud"`
	AprobadorID     *int64     `json:"aprobador_id,omitempty"`
	AlmacenID       *int64     `json:"almacen_id,omitempty"`
	GroupChatID     *int64     `json:"group_chat_id,omitempty"`
	SolicitanteName string     `json:"solicitante_name,omitempty"`
	Items           []PedidoItem `json:"items,omitempty"`
}

// PedidoItem is one requested article inside a pedido. The item name is
// denormalized at request time so the pedido keeps its history even if the
// inventory row is later renamed or deleted.
type PedidoItem struct {
	ID                 int64  `json:"id"`
	PedidoID           int64  `json:"pedido_id"`
	ItemID             int64  `json:"item_id"`
	NombreItem         string `json:"nombre_item"`
	CantidadSolicitada int    `json:"cantidad_solicitada"`
}
