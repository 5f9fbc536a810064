package models

import "time"

type EmbarcacionProhibida struct {
	ID                string    `json:"id" gorm:"primaryKey;type:text"`
	NombreEmbarcacion string    `json:"nombre_embarcacion" gorm:"type:text;not null"`
	Folio             string    `json:"folio" gorm:"type:text;index;not null"`
	Motivo            string    `json:"motivo" gorm:"type:text;not null"`
	EntidadProhibe    *string   `json:"entidad_prohibe" gorm:"type:text"`
	CreadoPorID       string    `json:"creado_por_id" gorm:"type:text"`
	CDate             time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type PersonaProhibida struct {
	ID             string    `json:"id" gorm:"primaryKey;type:text"`
	NombreCompleto string    `json:"nombre_completo" gorm:"type:text;not null"`
	CI             string    `json:"ci" gorm:"type:text;index;not null"`
	Motivo         string    `json:"motivo" gorm:"type:text;not null"`
	EntidadProhibe *string   `json:"entidad_prohibe" gorm:"type:text"`
	CreadoPorID    string    `json:"creado_por_id" gorm:"type:text"`
	CDate          time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type PersonaObservada struct {
	ID             string    `json:"id" gorm:"primaryKey;type:text"`
	NombreCompleto string    `json:"nombre_completo" gorm:"type:text;not null"`
	CI             string    `json:"ci" gorm:"type:text;index;not null"`
	Motivo         string    `json:"motivo" gorm:"type:text;not null"`
	EntidadObserva *string   `json:"entidad_observa" gorm:"type:text"`
	CreadoPorID    string    `json:"creado_por_id" gorm:"type:text"`
	CDate          time.Time `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
