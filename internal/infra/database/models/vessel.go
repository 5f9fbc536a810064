package models

import "time"

type Embarcacion struct {
	ID                       string     `json:"id" gorm:"primaryKey;type:text"`
	NombreEmbarcacion        string     `json:"nombre_embarcacion" gorm:"type:text;not null"`
	Folio                    string     `json:"folio" gorm:"type:text;index;not null"`
	Basificacion             string     `json:"basificacion" gorm:"type:text;index;not null"`
	ZonaDespacho             string     `json:"zona_despacho" gorm:"type:text;not null"`
	TiempoDespacho           int64      `json:"tiempo_despacho" gorm:"not null"` // seconds
	UnidadTiempoDespacho     string     `json:"unidad_tiempo_despacho" gorm:"type:text"`
	FechaHoraSalida          time.Time  `json:"fecha_hora_salida" gorm:"type:timestamp with time zone;not null"`
	Propulsion               string     `json:"propulsion" gorm:"type:text;not null"`
	OtraPropulsion           *string    `json:"otra_propulsion" gorm:"type:text"`
	PropietarioNombre        *string    `json:"propietario_nombre" gorm:"type:text"`
	PropietarioCI            *string    `json:"propietario_ci" gorm:"type:text"`
	PropietarioTelefono      *string    `json:"propietario_telefono" gorm:"type:text"`
	PropietarioDocumento     *string    `json:"propietario_documento_salida" gorm:"type:text"`
	PropietarioPermiso       *string    `json:"propietario_numero_permiso" gorm:"type:text"`
	PatronNombre             *string    `json:"patron_nombre" gorm:"type:text"`
	PatronCI                 *string    `json:"patron_ci" gorm:"type:text"`
	PatronTelefono           *string    `json:"patron_telefono" gorm:"type:text"`
	PatronDocumento          *string    `json:"patron_documento_salida" gorm:"type:text"`
	PatronPermiso            *string    `json:"patron_numero_permiso" gorm:"type:text"`
	ComunicacionAbordo       *string    `json:"comunicacion_abordo" gorm:"type:text"`
	Estado                   string     `json:"estado" gorm:"type:text;index;not null"`
	FechaHoraEntrada         *time.Time `json:"fecha_hora_entrada" gorm:"type:timestamp with time zone"`
	ObservacionesEntrada     *string    `json:"observaciones_entrada" gorm:"type:text"`
	UsuarioRegistroSalidaID  string     `json:"usuario_registro_salida_id" gorm:"type:text"`
	UsuarioRegistroEntradaID *string    `json:"usuario_registro_entrada_id" gorm:"type:text"`

	Tripulantes []Tripulante `json:"tripulantes" gorm:"foreignKey:EmbarcacionID;constraint:OnDelete:CASCADE;"`
	Pasajeros   []Pasajero   `json:"pasajeros" gorm:"foreignKey:EmbarcacionID;constraint:OnDelete:CASCADE;"`

	CDate time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"updated_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Tripulante struct {
	ID              int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	EmbarcacionID   string  `json:"embarcacion_id" gorm:"type:text;index;not null"`
	NombreApellidos string  `json:"nombre_apellidos" gorm:"type:text;not null"`
	CI              string  `json:"ci" gorm:"type:text;index;not null"`
	Telefono        *string `json:"telefono" gorm:"type:text"`
	DocumentoSalida *string `json:"documento_salida" gorm:"type:text"`
	NumeroPermiso   *string `json:"numero_permiso" gorm:"type:text"`

	CDate time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Pasajero struct {
	ID              int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	EmbarcacionID   string  `json:"embarcacion_id" gorm:"type:text;index;not null"`
	NombreApellidos string  `json:"nombre_apellidos" gorm:"type:text;not null"`
	CIPasaporte     string  `json:"ci_pasaporte" gorm:"type:text;index;not null"`
	Telefono        *string `json:"telefono" gorm:"type:text"`
	DocumentoSalida *string `json:"documento_salida" gorm:"type:text"`
	NumeroPermiso   *string `json:"numero_permiso" gorm:"type:text"`

	CDate time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
