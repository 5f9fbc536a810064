package usecase

import (
	"context"

	"github.com/capitania/consimar/internal/domain"
)

// VesselRepository defines storage operations for departure records.
type VesselRepository interface {
	// Create persists a vessel together with its crew and passenger rows
	// in a single transaction.
	Create(ctx context.Context, v domain.Vessel) (domain.Vessel, error)
	GetByFolio(ctx context.Context, folio string) (domain.Vessel, error)
	List(ctx context.Context) ([]domain.Vessel, error)
	RegisterArrival(ctx context.Context, folio string, arr domain.Arrival, recorderID string) (domain.Vessel, error)
}

// ProhibitionLookup is the read surface the departure checker needs.
type ProhibitionLookup interface {
	GetProhibitedVesselByFolio(ctx context.Context, folio string) (domain.ProhibitedVessel, error)
	ListProhibitedPersonsByCI(ctx context.Context, cis []string) ([]domain.ProhibitedPerson, error)
}

// ProhibitedVesselRepository manages the banned-vessel list.
type ProhibitedVesselRepository interface {
	GetProhibitedVesselByFolio(ctx context.Context, folio string) (domain.ProhibitedVessel, error)
	GetProhibitedVessel(ctx context.Context, id string) (domain.ProhibitedVessel, error)
	ListProhibitedVessels(ctx context.Context) ([]domain.ProhibitedVessel, error)
	CreateProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel) error
	UpdateProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel) error
	DeleteProhibitedVessel(ctx context.Context, id string) error
}

// ProhibitedPersonRepository manages the banned-person list.
type ProhibitedPersonRepository interface {
	GetProhibitedPersonByCI(ctx context.Context, ci string) (domain.ProhibitedPerson, error)
	GetProhibitedPerson(ctx context.Context, id string) (domain.ProhibitedPerson, error)
	ListProhibitedPersons(ctx context.Context) ([]domain.ProhibitedPerson, error)
	ListProhibitedPersonsByCI(ctx context.Context, cis []string) ([]domain.ProhibitedPerson, error)
	CreateProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson) error
	UpdateProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson) error
	DeleteProhibitedPerson(ctx context.Context, id string) error
}

// ObservedPersonRepository manages the informational watch list.
type ObservedPersonRepository interface {
	GetObservedPersonByCI(ctx context.Context, ci string) (domain.ObservedPerson, error)
	GetObservedPerson(ctx context.Context, id string) (domain.ObservedPerson, error)
	ListObservedPersons(ctx context.Context) ([]domain.ObservedPerson, error)
	CreateObservedPerson(ctx context.Context, p domain.ObservedPerson) error
	UpdateObservedPerson(ctx context.Context, p domain.ObservedPerson) error
	DeleteObservedPerson(ctx context.Context, id string) error
}

// UserRepository defines persistence/lookup for accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	// GetCredentials also returns the stored password hash for login.
	GetCredentials(ctx context.Context, username string) (domain.User, string, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u domain.User, passwordHash string) error
	Update(ctx context.Context, u domain.User) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository stores the append-only dispatch message log.
type MessageRepository interface {
	Create(ctx context.Context, m domain.Message) error
	// List returns messages newest first.
	List(ctx context.Context) ([]domain.Message, error)
}

// SignalPublisher fans out table-change events after mutations.
type SignalPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
