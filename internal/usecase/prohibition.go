package usecase

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"github.com/capitania/consimar/internal/domain"
)

// ProhibitionChecker answers whether a departure draft is blocked by the
// banned-vessel or banned-person lists.
type ProhibitionChecker struct {
	lookup ProhibitionLookup
}

func NewProhibitionChecker(lookup ProhibitionLookup) *ProhibitionChecker {
	return &ProhibitionChecker{lookup: lookup}
}

type personaEnFormulario struct {
	nombre string
	ci     string
	tipo   string
}

// Check returns the first active prohibition matching the draft, or nil
// when the departure is clear. The banned-vessel lookup short-circuits:
// person lists are never queried when the folio itself is banned. When
// several collected persons are banned, the one reported is the first in
// form collection order (owner, master, crew, passengers).
func (c *ProhibitionChecker) Check(ctx context.Context, draft domain.DispatchDraft) (*domain.BlockedError, error) {
	pv, err := c.lookup.GetProhibitedVesselByFolio(ctx, draft.Folio)
	if err == nil {
		return &domain.BlockedError{
			Message: fmt.Sprintf("Esta embarcación (%s - %s) tiene una prohibición de salida activa.", pv.NombreEmbarcacion, pv.Folio),
		}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, pkgerrors.Wrap(err, "ProhibitionChecker.Check: vessel lookup failed")
	}

	personas := collectPersonas(draft)
	if len(personas) == 0 {
		return nil, nil
	}

	cis := make([]string, 0, len(personas))
	for _, p := range personas {
		cis = append(cis, p.ci)
	}

	banned, err := c.lookup.ListProhibitedPersonsByCI(ctx, cis)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ProhibitionChecker.Check: person lookup failed")
	}
	if len(banned) == 0 {
		return nil, nil
	}

	bannedSet := make(map[string]struct{}, len(banned))
	for _, b := range banned {
		bannedSet[b.CI] = struct{}{}
	}

	for _, p := range personas {
		if _, ok := bannedSet[p.ci]; ok {
			return &domain.BlockedError{
				Message: fmt.Sprintf("La persona %s (%s) tiene una prohibición de salida activa.", p.nombre, p.tipo),
			}, nil
		}
	}
	return nil, nil
}

// collectPersonas gathers everyone on the draft with a non-empty CI,
// tagged with the role label used in block messages.
func collectPersonas(draft domain.DispatchDraft) []personaEnFormulario {
	var personas []personaEnFormulario
	if draft.Propietario.CI != "" {
		personas = append(personas, personaEnFormulario{draft.Propietario.NombreApellidos, draft.Propietario.CI, "Propietario"})
	}
	if draft.Patron.CI != "" {
		personas = append(personas, personaEnFormulario{draft.Patron.NombreApellidos, draft.Patron.CI, "Patrón"})
	}
	// Positions count CI-holding rows only; empty placeholder rows do not
	// shift the reported number.
	n := 0
	for _, t := range draft.Tripulantes {
		if t.CI != "" {
			n++
			personas = append(personas, personaEnFormulario{t.NombreApellidos, t.CI, fmt.Sprintf("Tripulante %d", n)})
		}
	}
	n = 0
	for _, p := range draft.Pasajeros {
		if p.CI != "" {
			n++
			personas = append(personas, personaEnFormulario{p.NombreApellidos, p.CI, fmt.Sprintf("Pasajero %d", n)})
		}
	}
	return personas
}
