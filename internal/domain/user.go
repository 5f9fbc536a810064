package domain

import "time"

// User is an operator account. Basificacion scopes what Operador and
// Visualizador roles can see; the FolioEmbarcacionPropietario pair is only
// set for Operador Propietario accounts.
type User struct {
	ID                           string    `json:"id"`
	Username                     string    `json:"username"` // email
	Role                         Role      `json:"role"`
	Basificacion                 string    `json:"basificacion"`
	NombreEmbarcacionPropietario *string   `json:"nombreEmbarcacionPropietario,omitempty"`
	FolioEmbarcacionPropietario  *string   `json:"folioEmbarcacionPropietario,omitempty"`
	CDate                        time.Time `json:"cdate"`
}

// CanMutate reports whether the role may perform writes at all.
// Visualizador is read-only everywhere, not merely hidden in the UI.
func (u User) CanMutate() bool {
	return u.Role != RoleVisualizador
}

// OwnFolio returns the single folio an Operador Propietario may act on.
func (u User) OwnFolio() string {
	if u.FolioEmbarcacionPropietario == nil {
		return ""
	}
	return *u.FolioEmbarcacionPropietario
}
