package models

// AlmacenItem is a warehouse inventory row.
type AlmacenItem struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Cantidad    int    `json:"cantidad"`
	Descripcion string `json:"descripcion,omitempty"`
	Tipo        string `json:"tipo"`
}

// MaterialEnObra is an aggregated row of material already approved for site
// use, summed over every delivered or in-flight pedido.
type MaterialEnObra struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}
