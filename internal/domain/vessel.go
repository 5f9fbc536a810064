package domain

import "time"

// Persona is one person attached to a departure record. A persona with
// neither name nor CI is treated as absent and never validated.
type Persona struct {
	NombreApellidos string `json:"nombreApellidos"`
	CI              string `json:"ci"`
	Telefono        string `json:"telefono,omitempty"`
	DocumentoSalida string `json:"documentoSalida,omitempty"`
	NumeroPermiso   string `json:"numeroPermiso,omitempty"`
}

// Presente reports whether any identifying field is set.
func (p Persona) Presente() bool {
	return p.NombreApellidos != "" || p.CI != ""
}

// Completa reports whether both name and CI are set.
func (p Persona) Completa() bool {
	return p.NombreApellidos != "" && p.CI != ""
}

// DispatchDraft is the submitted departure form, before validation and
// prohibition checks.
type DispatchDraft struct {
	NombreEmbarcacion    string    `json:"nombreEmbarcacion"`
	Folio                string    `json:"folio"`
	Basificacion         string    `json:"basificacion"`
	ZonaDespacho         string    `json:"zonaDespacho"`
	TiempoDespacho       float64   `json:"tiempoDespacho"`
	UnidadTiempoDespacho string    `json:"unidadTiempoDespacho"`
	FechaHoraSalida      time.Time `json:"fechaHoraSalida"`
	Propulsion           string    `json:"propulsion"`
	OtraPropulsion       string    `json:"otraPropulsion,omitempty"`
	Propietario          Persona   `json:"propietario"`
	Patron               Persona   `json:"patron"`
	Tripulantes          []Persona `json:"tripulantes"`
	Pasajeros            []Persona `json:"pasajeros"`
	ComunicacionAbordo   string    `json:"comunicacionAbordo,omitempty"`
}

// DespachoSegundos normalizes the authorized duration to seconds.
func (d DispatchDraft) DespachoSegundos() int64 {
	if d.UnidadTiempoDespacho == "dias" {
		return int64(d.TiempoDespacho * 24 * 3600)
	}
	return int64(d.TiempoDespacho * 3600)
}

// Vessel is a persisted departure record.
type Vessel struct {
	ID                       string      `json:"id"`
	NombreEmbarcacion        string      `json:"nombreEmbarcacion"`
	Folio                    string      `json:"folio"`
	Basificacion             string      `json:"basificacion"`
	ZonaDespacho             string      `json:"zonaDespacho"`
	TiempoDespacho           int64       `json:"tiempoDespacho"` // seconds
	UnidadTiempoDespacho     string      `json:"unidadTiempoDespacho"`
	FechaHoraSalida          time.Time   `json:"fechaHoraSalida"`
	Propulsion               string      `json:"propulsion"`
	OtraPropulsion           *string     `json:"otraPropulsion,omitempty"`
	Propietario              Persona     `json:"propietario"`
	Patron                   Persona     `json:"patron"`
	Tripulantes              []Persona   `json:"tripulantes"`
	Pasajeros                []Persona   `json:"pasajeros"`
	ComunicacionAbordo       string      `json:"comunicacionAbordo,omitempty"`
	Estado                   VesselState `json:"estado"`
	FechaHoraEntrada         *time.Time  `json:"fechaHoraEntrada,omitempty"`
	ObservacionesEntrada     *string     `json:"observacionesEntrada,omitempty"`
	UsuarioRegistroSalidaID  string      `json:"usuarioRegistroSalidaId"`
	UsuarioRegistroEntradaID *string     `json:"usuarioRegistroEntradaId,omitempty"`
	CDate                    time.Time   `json:"cdate"`
}

// Arrival is the payload for registering a vessel back in port.
type Arrival struct {
	Folio            string    `json:"folio"`
	FechaHoraLlegada time.Time `json:"fechaHoraLlegada"`
	Observaciones    string    `json:"observaciones,omitempty"`
}
