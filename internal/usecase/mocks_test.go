package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/capitania/consimar/internal/domain"
)

type mockVesselRepo struct {
	byFolio map[string]domain.Vessel
}

func newMockVesselRepo() *mockVesselRepo {
	return &mockVesselRepo{byFolio: map[string]domain.Vessel{}}
}

func (m *mockVesselRepo) Create(ctx context.Context, v domain.Vessel) (domain.Vessel, error) {
	m.byFolio[v.Folio] = v
	return v, nil
}

func (m *mockVesselRepo) GetByFolio(ctx context.Context, folio string) (domain.Vessel, error) {
	v, ok := m.byFolio[folio]
	if !ok {
		return domain.Vessel{}, domain.NotFoundError{Resource: "embarcacion"}
	}
	return v, nil
}

func (m *mockVesselRepo) List(ctx context.Context) ([]domain.Vessel, error) {
	out := make([]domain.Vessel, 0, len(m.byFolio))
	for _, v := range m.byFolio {
		out = append(out, v)
	}
	return out, nil
}

func (m *mockVesselRepo) RegisterArrival(ctx context.Context, folio string, arr domain.Arrival, recorderID string) (domain.Vessel, error) {
	v, ok := m.byFolio[folio]
	if !ok || v.Estado != domain.StateDespachada {
		return domain.Vessel{}, domain.NotFoundError{Resource: "embarcacion despachada"}
	}
	llegada := arr.FechaHoraLlegada
	v.Estado = domain.StateEnPuerto
	v.FechaHoraEntrada = &llegada
	if arr.Observaciones != "" {
		obs := arr.Observaciones
		v.ObservacionesEntrada = &obs
	}
	v.UsuarioRegistroEntradaID = &recorderID
	m.byFolio[folio] = v
	return v, nil
}

type mockProhibitionLookup struct {
	vessels     map[string]domain.ProhibitedVessel
	persons     map[string]domain.ProhibitedPerson
	personCalls int
}

func newMockProhibitionLookup() *mockProhibitionLookup {
	return &mockProhibitionLookup{
		vessels: map[string]domain.ProhibitedVessel{},
		persons: map[string]domain.ProhibitedPerson{},
	}
}

func (m *mockProhibitionLookup) GetProhibitedVesselByFolio(ctx context.Context, folio string) (domain.ProhibitedVessel, error) {
	pv, ok := m.vessels[folio]
	if !ok {
		return domain.ProhibitedVessel{}, domain.NotFoundError{Resource: "prohibicion de embarcacion"}
	}
	return pv, nil
}

func (m *mockProhibitionLookup) ListProhibitedPersonsByCI(ctx context.Context, cis []string) ([]domain.ProhibitedPerson, error) {
	m.personCalls++
	var out []domain.ProhibitedPerson
	for _, ci := range cis {
		if p, ok := m.persons[ci]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockSignal struct {
	events []domain.Event
}

func (m *mockSignal) Publish(ctx context.Context, event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

type failingSignal struct{}

func (failingSignal) Publish(ctx context.Context, event domain.Event) error {
	return errors.New("redis unavailable")
}

type mockWatchlistRepo struct {
	vessels  map[string]domain.ProhibitedVessel
	persons  map[string]domain.ProhibitedPerson
	observed map[string]domain.ObservedPerson
}

func newMockWatchlistRepo() *mockWatchlistRepo {
	return &mockWatchlistRepo{
		vessels:  map[string]domain.ProhibitedVessel{},
		persons:  map[string]domain.ProhibitedPerson{},
		observed: map[string]domain.ObservedPerson{},
	}
}

func (m *mockWatchlistRepo) GetProhibitedVesselByFolio(ctx context.Context, folio string) (domain.ProhibitedVessel, error) {
	for _, pv := range m.vessels {
		if pv.Folio == folio {
			return pv, nil
		}
	}
	return domain.ProhibitedVessel{}, domain.NotFoundError{Resource: "prohibicion de embarcacion"}
}

func (m *mockWatchlistRepo) GetProhibitedVessel(ctx context.Context, id string) (domain.ProhibitedVessel, error) {
	pv, ok := m.vessels[id]
	if !ok {
		return domain.ProhibitedVessel{}, domain.NotFoundError{Resource: "prohibicion de embarcacion"}
	}
	return pv, nil
}

func (m *mockWatchlistRepo) ListProhibitedVessels(ctx context.Context) ([]domain.ProhibitedVessel, error) {
	out := make([]domain.ProhibitedVessel, 0, len(m.vessels))
	for _, pv := range m.vessels {
		out = append(out, pv)
	}
	return out, nil
}

func (m *mockWatchlistRepo) CreateProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel) error {
	m.vessels[p.ID] = p
	return nil
}

func (m *mockWatchlistRepo) UpdateProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel) error {
	m.vessels[p.ID] = p
	return nil
}

func (m *mockWatchlistRepo) DeleteProhibitedVessel(ctx context.Context, id string) error {
	delete(m.vessels, id)
	return nil
}

func (m *mockWatchlistRepo) GetProhibitedPersonByCI(ctx context.Context, ci string) (domain.ProhibitedPerson, error) {
	for _, p := range m.persons {
		if p.CI == ci {
			return p, nil
		}
	}
	return domain.ProhibitedPerson{}, domain.NotFoundError{Resource: "prohibicion de persona"}
}

func (m *mockWatchlistRepo) GetProhibitedPerson(ctx context.Context, id string) (domain.ProhibitedPerson, error) {
	p, ok := m.persons[id]
	if !ok {
		return domain.ProhibitedPerson{}, domain.NotFoundError{Resource: "prohibicion de persona"}
	}
	return p, nil
}

func (m *mockWatchlistRepo) ListProhibitedPersons(ctx context.Context) ([]domain.ProhibitedPerson, error) {
	out := make([]domain.ProhibitedPerson, 0, len(m.persons))
	for _, p := range m.persons {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockWatchlistRepo) ListProhibitedPersonsByCI(ctx context.Context, cis []string) ([]domain.ProhibitedPerson, error) {
	var out []domain.ProhibitedPerson
	for _, ci := range cis {
		for _, p := range m.persons {
			if p.CI == ci {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *mockWatchlistRepo) CreateProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson) error {
	m.persons[p.ID] = p
	return nil
}

func (m *mockWatchlistRepo) UpdateProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson) error {
	m.persons[p.ID] = p
	return nil
}

func (m *mockWatchlistRepo) DeleteProhibitedPerson(ctx context.Context, id string) error {
	delete(m.persons, id)
	return nil
}

func (m *mockWatchlistRepo) GetObservedPersonByCI(ctx context.Context, ci string) (domain.ObservedPerson, error) {
	for _, p := range m.observed {
		if p.CI == ci {
			return p, nil
		}
	}
	return domain.ObservedPerson{}, domain.NotFoundError{Resource: "persona observada"}
}

func (m *mockWatchlistRepo) GetObservedPerson(ctx context.Context, id string) (domain.ObservedPerson, error) {
	p, ok := m.observed[id]
	if !ok {
		return domain.ObservedPerson{}, domain.NotFoundError{Resource: "persona observada"}
	}
	return p, nil
}

func (m *mockWatchlistRepo) ListObservedPersons(ctx context.Context) ([]domain.ObservedPerson, error) {
	out := make([]domain.ObservedPerson, 0, len(m.observed))
	for _, p := range m.observed {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockWatchlistRepo) CreateObservedPerson(ctx context.Context, p domain.ObservedPerson) error {
	m.observed[p.ID] = p
	return nil
}

func (m *mockWatchlistRepo) UpdateObservedPerson(ctx context.Context, p domain.ObservedPerson) error {
	m.observed[p.ID] = p
	return nil
}

func (m *mockWatchlistRepo) DeleteObservedPerson(ctx context.Context, id string) error {
	delete(m.observed, id)
	return nil
}

type mockUserRepo struct {
	users  map[string]domain.User
	hashes map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]domain.User{}, hashes: map[string]string{}}
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "usuario"}
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, _, err := m.GetCredentials(ctx, username)
	return u, err
}

func (m *mockUserRepo) GetCredentials(ctx context.Context, username string) (domain.User, string, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, m.hashes[username], nil
		}
	}
	return domain.User{}, "", domain.NotFoundError{Resource: "usuario"}
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User, passwordHash string) error {
	m.users[u.ID] = u
	m.hashes[u.Username] = passwordHash
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, u domain.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	delete(m.users, id)
	return nil
}

type mockMessageRepo struct {
	msgs []domain.Message
}

func (m *mockMessageRepo) Create(ctx context.Context, msg domain.Message) error {
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *mockMessageRepo) List(ctx context.Context) ([]domain.Message, error) {
	return m.msgs, nil
}

func adminActor() domain.User {
	return domain.User{ID: "admin-1", Username: "admin@capitania.cu", Role: domain.RoleAdministrador, Basificacion: domain.BasificacionTodas}
}

func despatchedVessel(folio, basificacion string, salida time.Time, segundos int64) domain.Vessel {
	return domain.Vessel{
		ID:                "v-" + folio,
		NombreEmbarcacion: "Embarcación " + folio,
		Folio:             folio,
		Basificacion:      basificacion,
		ZonaDespacho:      "Bahía Norte",
		TiempoDespacho:    segundos,
		FechaHoraSalida:   salida,
		Estado:            domain.StateDespachada,
	}
}
