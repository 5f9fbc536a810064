package models

import "time"

type Usuario struct {
	ID                           string    `json:"id" gorm:"primaryKey;type:text"`
	Username                     string    `json:"username" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash                 string    `json:"-" gorm:"type:text;not null"`
	Role                         string    `json:"role" gorm:"type:text;not null"`
	Basificacion                 string    `json:"basificacion" gorm:"type:text;not null"`
	NombreEmbarcacionPropietario *string   `json:"nombre_embarcacion_propietario" gorm:"type:text"`
	FolioEmbarcacionPropietario  *string   `json:"folio_embarcacion_propietario" gorm:"type:text"`
	CDate                        time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate                        time.Time `json:"updated_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Mensaje struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	Destinatario string    `json:"destinatario_info" gorm:"type:text;not null"`
	Metodo       string    `json:"metodo_envio" gorm:"type:text;not null"`
	Texto        string    `json:"texto" gorm:"type:text;not null"`
	EnviadoPorID string    `json:"enviado_por_id" gorm:"type:text"`
	CDate        time.Time `json:"fecha" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index"`
}
