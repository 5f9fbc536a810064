package domain

import "time"

// ProhibitedVessel bars a folio from departure.
type ProhibitedVessel struct {
	ID                string    `json:"id"`
	NombreEmbarcacion string    `json:"nombreEmbarcacion"`
	Folio             string    `json:"folio"`
	Motivo            string    `json:"motivo"`
	EntidadProhibe    string    `json:"entidadProhibe,omitempty"`
	CreadoPorID       string    `json:"creadoPorId"`
	CDate             time.Time `json:"cdate"`
}

// ProhibitedPerson bars a person, identified by CI, from departure.
type ProhibitedPerson struct {
	ID             string    `json:"id"`
	NombreCompleto string    `json:"nombreCompleto"`
	CI             string    `json:"ci"`
	Motivo         string    `json:"motivo"`
	EntidadProhibe string    `json:"entidadProhibe,omitempty"`
	CreadoPorID    string    `json:"creadoPorId"`
	CDate          time.Time `json:"cdate"`
}

// ObservedPerson is watch-listed for awareness only; it never blocks a
// departure.
type ObservedPerson struct {
	ID             string    `json:"id"`
	NombreCompleto string    `json:"nombreCompleto"`
	CI             string    `json:"ci"`
	Motivo         string    `json:"motivo"`
	EntidadObserva string    `json:"entidadObserva,omitempty"`
	CreadoPorID    string    `json:"creadoPorId"`
	CDate          time.Time `json:"cdate"`
}
