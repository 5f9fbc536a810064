package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/capitania/consimar/internal/domain"
)

func TestCheckBannedVesselShortCircuits(t *testing.T) {
	lookup := newMockProhibitionLookup()
	lookup.vessels["F-101"] = domain.ProhibitedVessel{NombreEmbarcacion: "Gaviota", Folio: "F-101"}
	checker := NewProhibitionChecker(lookup)

	block, err := checker.Check(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if block == nil {
		t.Fatal("expected a block for banned folio")
	}
	if !strings.Contains(block.Message, "Gaviota - F-101") {
		t.Errorf("unexpected message: %s", block.Message)
	}
	if lookup.personCalls != 0 {
		t.Errorf("person lookup must not run when the folio is banned, got %d calls", lookup.personCalls)
	}
}

func TestCheckBannedPersonReportsFirstInFormOrder(t *testing.T) {
	lookup := newMockProhibitionLookup()
	lookup.persons["90020254321"] = domain.ProhibitedPerson{NombreCompleto: "Pedro Ruiz", CI: "90020254321"}
	lookup.persons["91030312345"] = domain.ProhibitedPerson{NombreCompleto: "Luis Gómez", CI: "91030312345"}
	checker := NewProhibitionChecker(lookup)

	draft := validDraft()
	draft.Patron = domain.Persona{NombreApellidos: "Pedro Ruiz", CI: "90020254321"}
	draft.Tripulantes = []domain.Persona{{NombreApellidos: "Luis Gómez", CI: "91030312345"}}

	block, err := checker.Check(context.Background(), draft)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if block == nil {
		t.Fatal("expected a block for banned patrón")
	}
	if !strings.Contains(block.Message, "Pedro Ruiz (Patrón)") {
		t.Errorf("expected the patrón to be reported first, got: %s", block.Message)
	}
}

func TestCheckBannedCrewNumberSkipsEmptyRows(t *testing.T) {
	lookup := newMockProhibitionLookup()
	lookup.persons["91030312345"] = domain.ProhibitedPerson{NombreCompleto: "Luis Gómez", CI: "91030312345"}
	checker := NewProhibitionChecker(lookup)

	// An empty placeholder row before the banned crew member must not
	// shift the reported position.
	draft := validDraft()
	draft.Tripulantes = []domain.Persona{
		{},
		{NombreApellidos: "Luis Gómez", CI: "91030312345"},
	}

	block, err := checker.Check(context.Background(), draft)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if block == nil || !strings.Contains(block.Message, "Luis Gómez (Tripulante 1)") {
		t.Fatalf("expected Tripulante 1, got: %v", block)
	}
}

func TestCheckBannedPassengerLabel(t *testing.T) {
	lookup := newMockProhibitionLookup()
	lookup.persons["P-778899"] = domain.ProhibitedPerson{NombreCompleto: "Ana Díaz", CI: "P-778899"}
	checker := NewProhibitionChecker(lookup)

	draft := validDraft()
	draft.Pasajeros = []domain.Persona{{NombreApellidos: "Ana Díaz", CI: "P-778899"}}

	block, err := checker.Check(context.Background(), draft)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if block == nil || !strings.Contains(block.Message, "Ana Díaz (Pasajero 1)") {
		t.Fatalf("expected passenger block, got: %v", block)
	}
}

func TestCheckClearDraft(t *testing.T) {
	checker := NewProhibitionChecker(newMockProhibitionLookup())

	block, err := checker.Check(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if block != nil {
		t.Fatalf("expected no block, got: %s", block.Message)
	}
}
