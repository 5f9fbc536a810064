package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/capitania/consimar/internal/domain"
)

// DepartureChecker is what the dispatch flow needs from the prohibition
// checker.
type DepartureChecker interface {
	Check(ctx context.Context, draft domain.DispatchDraft) (*domain.BlockedError, error)
}

// DispatchUsecase drives the vessel lifecycle: Despachada on departure,
// En puerto on arrival, terminal.
type DispatchUsecase struct {
	vessels   VesselRepository
	checker   DepartureChecker
	countdown *CountdownTracker
	signal    SignalPublisher
}

func NewDispatchUsecase(
	vessels VesselRepository,
	checker DepartureChecker,
	countdown *CountdownTracker,
	signal SignalPublisher,
) *DispatchUsecase {
	return &DispatchUsecase{
		vessels:   vessels,
		checker:   checker,
		countdown: countdown,
		signal:    signal,
	}
}

// RegisterDeparture validates the draft, runs the prohibition checks and
// persists a new despatched record. The countdown entry is initialized to
// the full authorized duration.
func (u *DispatchUsecase) RegisterDeparture(ctx context.Context, draft domain.DispatchDraft, actor domain.User) (domain.Vessel, error) {
	if !actor.CanMutate() {
		return domain.Vessel{}, domain.ErrForbidden
	}

	if fieldErrs := ValidateDraft(draft, actor); len(fieldErrs) > 0 {
		return domain.Vessel{}, domain.ValidationError{Fields: fieldErrs}
	}

	block, err := u.checker.Check(ctx, draft)
	if err != nil {
		return domain.Vessel{}, errors.Wrap(err, "RegisterDeparture: prohibition check failed")
	}
	if block != nil {
		return domain.Vessel{}, *block
	}

	segundos := draft.DespachoSegundos()
	v := domain.Vessel{
		ID:                      uuid.NewString(),
		NombreEmbarcacion:       draft.NombreEmbarcacion,
		Folio:                   draft.Folio,
		Basificacion:            draft.Basificacion,
		ZonaDespacho:            draft.ZonaDespacho,
		TiempoDespacho:          segundos,
		UnidadTiempoDespacho:    draft.UnidadTiempoDespacho,
		FechaHoraSalida:         draft.FechaHoraSalida,
		Propulsion:              draft.Propulsion,
		Propietario:             draft.Propietario,
		Patron:                  draft.Patron,
		Tripulantes:             presentes(draft.Tripulantes),
		Pasajeros:               presentes(draft.Pasajeros),
		ComunicacionAbordo:      draft.ComunicacionAbordo,
		Estado:                  domain.StateDespachada,
		UsuarioRegistroSalidaID: actor.ID,
	}
	if draft.Propulsion == domain.PropulsionOtros {
		v.OtraPropulsion = &draft.OtraPropulsion
	}

	created, err := u.vessels.Create(ctx, v)
	if err != nil {
		return domain.Vessel{}, errors.Wrap(err, "RegisterDeparture: persist failed")
	}

	u.countdown.Track(created.Folio, segundos)
	u.publish(ctx, domain.Event{Type: "INSERT", Table: domain.TableEmbarcaciones, Key: created.Folio})
	return created, nil
}

// RegisterArrival transitions a despatched vessel to En puerto. The
// requester must be authorized for the vessel's zone (Operador), own the
// folio (Operador Propietario) or be Administrador; Visualizador never
// mutates. Registering an arrival twice is rejected, not absorbed.
func (u *DispatchUsecase) RegisterArrival(ctx context.Context, arr domain.Arrival, actor domain.User) (domain.Vessel, error) {
	if !actor.CanMutate() {
		return domain.Vessel{}, domain.ErrForbidden
	}

	v, err := u.vessels.GetByFolio(ctx, arr.Folio)
	if err != nil {
		return domain.Vessel{}, errors.Wrap(err, "RegisterArrival: vessel lookup failed")
	}

	switch actor.Role {
	case domain.RoleOperador:
		if v.Basificacion != actor.Basificacion {
			return domain.Vessel{}, domain.ErrForbidden
		}
	case domain.RoleOperadorPropietario:
		if arr.Folio != actor.OwnFolio() {
			return domain.Vessel{}, domain.ErrForbidden
		}
	}

	if v.Estado == domain.StateEnPuerto {
		return domain.Vessel{}, domain.ErrAlreadyInPort
	}

	if arr.FechaHoraLlegada.IsZero() {
		arr.FechaHoraLlegada = time.Now()
	}
	if arr.FechaHoraLlegada.Before(v.FechaHoraSalida) {
		return domain.Vessel{}, domain.ValidationError{Fields: map[string]string{
			"fechaHoraLlegada": "La llegada no puede ser anterior a la salida.",
		}}
	}

	updated, err := u.vessels.RegisterArrival(ctx, arr.Folio, arr, actor.ID)
	if err != nil {
		return domain.Vessel{}, errors.Wrap(err, "RegisterArrival: persist failed")
	}

	u.countdown.Remove(arr.Folio)
	u.publish(ctx, domain.Event{Type: "UPDATE", Table: domain.TableEmbarcaciones, Key: arr.Folio})
	return updated, nil
}

// ListVessels returns the records visible to the requester.
func (u *DispatchUsecase) ListVessels(ctx context.Context, actor domain.User) ([]domain.Vessel, error) {
	all, err := u.vessels.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "ListVessels failed")
	}
	return VisibleVessels(actor, all), nil
}

// ListDespachadas returns the visible despatched vessels, optionally
// filtered by a name/folio/destination search term.
func (u *DispatchUsecase) ListDespachadas(ctx context.Context, actor domain.User, buscar string) ([]domain.Vessel, error) {
	visible, err := u.ListVessels(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Vessel, 0, len(visible))
	for _, v := range visible {
		if v.Estado != domain.StateDespachada {
			continue
		}
		if buscar != "" && !matchesSearch(v, buscar) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Invalidate refetches the authoritative vessel set and recomputes every
// countdown entry from stored timestamps. It is the single refresh routine
// behind change notifications.
func (u *DispatchUsecase) Invalidate(ctx context.Context) error {
	all, err := u.vessels.List(ctx)
	if err != nil {
		return errors.Wrap(err, "Invalidate: refetch failed")
	}
	u.countdown.Refresh(all, time.Now())
	return nil
}

// Countdown exposes the tracker for presentation.
func (u *DispatchUsecase) Countdown() *CountdownTracker {
	return u.countdown
}

// VisibleVessels applies the role/zone scope. Administrador sees all;
// Operador only their basificación; Operador Propietario only their folio;
// Visualizador everything when assigned "Todas", otherwise their zone.
func VisibleVessels(actor domain.User, vessels []domain.Vessel) []domain.Vessel {
	switch actor.Role {
	case domain.RoleAdministrador:
		return vessels
	case domain.RoleOperador:
		return filterVessels(vessels, func(v domain.Vessel) bool {
			return v.Basificacion == actor.Basificacion
		})
	case domain.RoleOperadorPropietario:
		return filterVessels(vessels, func(v domain.Vessel) bool {
			return v.Folio == actor.OwnFolio()
		})
	case domain.RoleVisualizador:
		if actor.Basificacion == domain.BasificacionTodas {
			return vessels
		}
		return filterVessels(vessels, func(v domain.Vessel) bool {
			return v.Basificacion == actor.Basificacion
		})
	default:
		return nil
	}
}

func filterVessels(vessels []domain.Vessel, keep func(domain.Vessel) bool) []domain.Vessel {
	out := make([]domain.Vessel, 0, len(vessels))
	for _, v := range vessels {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func matchesSearch(v domain.Vessel, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(v.NombreEmbarcacion), term) ||
		strings.Contains(strings.ToLower(v.Folio), term) ||
		strings.Contains(strings.ToLower(v.ZonaDespacho), term)
}

func presentes(personas []domain.Persona) []domain.Persona {
	out := make([]domain.Persona, 0, len(personas))
	for _, p := range personas {
		if p.Presente() {
			out = append(out, p)
		}
	}
	return out
}

// publish is best effort: the mutation already committed, a dropped event
// only delays the next refresh.
func (u *DispatchUsecase) publish(ctx context.Context, ev domain.Event) {
	if err := u.signal.Publish(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "failed to publish change event",
			slog.String("table", ev.Table),
			slog.String("error", err.Error()),
		)
	}
}
