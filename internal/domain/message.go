package domain

import "time"

// Message is one dispatch notification recorded when an operator sends an
// SMS/WhatsApp to a vessel contact. Messages are append-only.
type Message struct {
	ID           string    `json:"id"`
	Destinatario string    `json:"destinatario"` // "nombre (folio)"
	Metodo       string    `json:"metodo"`       // SMS | WhatsApp
	Texto        string    `json:"texto"`
	EnviadoPorID string    `json:"enviadoPorId"`
	CDate        time.Time `json:"cdate"`
}

// Event is a table-change notification fanned out over the signal channel
// after every successful mutation.
type Event struct {
	Type  string `json:"type"` // INSERT | UPDATE | DELETE
	Table string `json:"table"`
	Key   string `json:"key,omitempty"` // folio, ci or record id
}
