package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/capitania/consimar/internal/domain"
)

// WatchlistUsecase manages the two exclusion lists and the informational
// watch list. Uniqueness on folio/CI is pre-checked against existing
// entries at write time; the schema does not enforce it.
type WatchlistUsecase struct {
	vessels  ProhibitedVesselRepository
	persons  ProhibitedPersonRepository
	observed ObservedPersonRepository
	signal   SignalPublisher
}

func NewWatchlistUsecase(
	vessels ProhibitedVesselRepository,
	persons ProhibitedPersonRepository,
	observed ObservedPersonRepository,
	signal SignalPublisher,
) *WatchlistUsecase {
	return &WatchlistUsecase{
		vessels:  vessels,
		persons:  persons,
		observed: observed,
		signal:   signal,
	}
}

func (u *WatchlistUsecase) ListProhibitedVessels(ctx context.Context) ([]domain.ProhibitedVessel, error) {
	return u.vessels.ListProhibitedVessels(ctx)
}

func (u *WatchlistUsecase) AddProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel, actor domain.User) (domain.ProhibitedVessel, error) {
	if !actor.CanMutate() {
		return domain.ProhibitedVessel{}, domain.ErrForbidden
	}
	if p.NombreEmbarcacion == "" || p.Folio == "" || p.Motivo == "" {
		return domain.ProhibitedVessel{}, domain.ValidationError{Fields: map[string]string{
			"prohibicion": "Nombre, folio y motivo son obligatorios.",
		}}
	}
	if _, err := u.vessels.GetProhibitedVesselByFolio(ctx, p.Folio); err == nil {
		return domain.ProhibitedVessel{}, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.ProhibitedVessel{}, pkgerrors.Wrap(err, "AddProhibitedVessel: uniqueness pre-check failed")
	}

	p.ID = uuid.NewString()
	p.CreadoPorID = actor.ID
	if err := u.vessels.CreateProhibitedVessel(ctx, p); err != nil {
		return domain.ProhibitedVessel{}, pkgerrors.Wrap(err, "AddProhibitedVessel: persist failed")
	}
	u.notify(ctx, "INSERT", domain.TableEmbarcacionesProhibida, p.Folio)
	return p, nil
}

func (u *WatchlistUsecase) UpdateProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel, actor domain.User) error {
	if !actor.CanMutate() {
		return domain.ErrForbidden
	}
	current, err := u.vessels.GetProhibitedVessel(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.Folio != current.Folio {
		if _, err := u.vessels.GetProhibitedVesselByFolio(ctx, p.Folio); err == nil {
			return domain.ErrAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return pkgerrors.Wrap(err, "UpdateProhibitedVessel: uniqueness pre-check failed")
		}
	}
	p.CreadoPorID = current.CreadoPorID
	if err := u.vessels.UpdateProhibitedVessel(ctx, p); err != nil {
		return pkgerrors.Wrap(err, "UpdateProhibitedVessel: persist failed")
	}
	u.notify(ctx, "UPDATE", domain.TableEmbarcacionesProhibida, p.Folio)
	return nil
}

// RemoveProhibitedVessel deletes an entry. Only the Administrador or the
// user that created the prohibition may remove it.
func (u *WatchlistUsecase) RemoveProhibitedVessel(ctx context.Context, id string, actor domain.User) error {
	current, err := u.vessels.GetProhibitedVessel(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdministrador && current.CreadoPorID != actor.ID {
		return domain.ErrForbidden
	}
	if err := u.vessels.DeleteProhibitedVessel(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "RemoveProhibitedVessel: delete failed")
	}
	u.notify(ctx, "DELETE", domain.TableEmbarcacionesProhibida, current.Folio)
	return nil
}

func (u *WatchlistUsecase) ListProhibitedPersons(ctx context.Context) ([]domain.ProhibitedPerson, error) {
	return u.persons.ListProhibitedPersons(ctx)
}

func (u *WatchlistUsecase) AddProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson, actor domain.User) (domain.ProhibitedPerson, error) {
	if !actor.CanMutate() {
		return domain.ProhibitedPerson{}, domain.ErrForbidden
	}
	if p.NombreCompleto == "" || p.CI == "" || p.Motivo == "" {
		return domain.ProhibitedPerson{}, domain.ValidationError{Fields: map[string]string{
			"prohibicion": "Nombre, CI y motivo son obligatorios.",
		}}
	}
	if _, err := u.persons.GetProhibitedPersonByCI(ctx, p.CI); err == nil {
		return domain.ProhibitedPerson{}, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.ProhibitedPerson{}, pkgerrors.Wrap(err, "AddProhibitedPerson: uniqueness pre-check failed")
	}

	p.ID = uuid.NewString()
	p.CreadoPorID = actor.ID
	if err := u.persons.CreateProhibitedPerson(ctx, p); err != nil {
		return domain.ProhibitedPerson{}, pkgerrors.Wrap(err, "AddProhibitedPerson: persist failed")
	}
	u.notify(ctx, "INSERT", domain.TablePersonasProhibidas, p.CI)
	return p, nil
}

func (u *WatchlistUsecase) UpdateProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson, actor domain.User) error {
	if !actor.CanMutate() {
		return domain.ErrForbidden
	}
	current, err := u.persons.GetProhibitedPerson(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.CI != current.CI {
		if _, err := u.persons.GetProhibitedPersonByCI(ctx, p.CI); err == nil {
			return domain.ErrAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return pkgerrors.Wrap(err, "UpdateProhibitedPerson: uniqueness pre-check failed")
		}
	}
	p.CreadoPorID = current.CreadoPorID
	if err := u.persons.UpdateProhibitedPerson(ctx, p); err != nil {
		return pkgerrors.Wrap(err, "UpdateProhibitedPerson: persist failed")
	}
	u.notify(ctx, "UPDATE", domain.TablePersonasProhibidas, p.CI)
	return nil
}

func (u *WatchlistUsecase) RemoveProhibitedPerson(ctx context.Context, id string, actor domain.User) error {
	current, err := u.persons.GetProhibitedPerson(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdministrador && current.CreadoPorID != actor.ID {
		return domain.ErrForbidden
	}
	if err := u.persons.DeleteProhibitedPerson(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "RemoveProhibitedPerson: delete failed")
	}
	u.notify(ctx, "DELETE", domain.TablePersonasProhibidas, current.CI)
	return nil
}

func (u *WatchlistUsecase) ListObservedPersons(ctx context.Context) ([]domain.ObservedPerson, error) {
	return u.observed.ListObservedPersons(ctx)
}

func (u *WatchlistUsecase) AddObservedPerson(ctx context.Context, p domain.ObservedPerson, actor domain.User) (domain.ObservedPerson, error) {
	if !actor.CanMutate() {
		return domain.ObservedPerson{}, domain.ErrForbidden
	}
	if p.NombreCompleto == "" || p.CI == "" || p.Motivo == "" {
		return domain.ObservedPerson{}, domain.ValidationError{Fields: map[string]string{
			"observacion": "Nombre, CI y motivo son obligatorios.",
		}}
	}
	if _, err := u.observed.GetObservedPersonByCI(ctx, p.CI); err == nil {
		return domain.ObservedPerson{}, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.ObservedPerson{}, pkgerrors.Wrap(err, "AddObservedPerson: uniqueness pre-check failed")
	}

	p.ID = uuid.NewString()
	p.CreadoPorID = actor.ID
	if err := u.observed.CreateObservedPerson(ctx, p); err != nil {
		return domain.ObservedPerson{}, pkgerrors.Wrap(err, "AddObservedPerson: persist failed")
	}
	u.notify(ctx, "INSERT", domain.TablePersonasObservadas, p.CI)
	return p, nil
}

func (u *WatchlistUsecase) UpdateObservedPerson(ctx context.Context, p domain.ObservedPerson, actor domain.User) error {
	if !actor.CanMutate() {
		return domain.ErrForbidden
	}
	current, err := u.observed.GetObservedPerson(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.CI != current.CI {
		if _, err := u.observed.GetObservedPersonByCI(ctx, p.CI); err == nil {
			return domain.ErrAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return pkgerrors.Wrap(err, "UpdateObservedPerson: uniqueness pre-check failed")
		}
	}
	p.CreadoPorID = current.CreadoPorID
	if err := u.observed.UpdateObservedPerson(ctx, p); err != nil {
		return pkgerrors.Wrap(err, "UpdateObservedPerson: persist failed")
	}
	u.notify(ctx, "UPDATE", domain.TablePersonasObservadas, p.CI)
	return nil
}

func (u *WatchlistUsecase) RemoveObservedPerson(ctx context.Context, id string, actor domain.User) error {
	current, err := u.observed.GetObservedPerson(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdministrador && current.CreadoPorID != actor.ID {
		return domain.ErrForbidden
	}
	if err := u.observed.DeleteObservedPerson(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "RemoveObservedPerson: delete failed")
	}
	u.notify(ctx, "DELETE", domain.TablePersonasObservadas, current.CI)
	return nil
}

// ObservedSet returns the CIs currently on the watch list, used by read
// views to highlight observed persons. Watch-listed persons never block a
// departure.
func (u *WatchlistUsecase) ObservedSet(ctx context.Context) (map[string]bool, error) {
	list, err := u.observed.ListObservedPersons(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ObservedSet failed")
	}
	set := make(map[string]bool, len(list))
	for _, p := range list {
		set[p.CI] = true
	}
	return set, nil
}

func (u *WatchlistUsecase) notify(ctx context.Context, typ, table, key string) {
	if err := u.signal.Publish(ctx, domain.Event{Type: typ, Table: table, Key: key}); err != nil {
		slog.ErrorContext(ctx, "failed to publish change event",
			slog.String("table", table),
			slog.String("error", err.Error()),
		)
	}
}
