package models

// Ubicacion is one node of the site location hierarchy: a (tipo, nombre)
// pair stored flat in ubicaciones_config. There are no parent/child keys;
// hierarchy order is imposed by the walker, not the table.
type Ubicacion struct {
	ID     int64  `json:"id"`
	Tipo   string `json:"tipo"`
	Nombre string `json:"nombre"`
}

// TipoTrabajo is a selectable work category offered during avance registration.
type TipoTrabajo struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}
