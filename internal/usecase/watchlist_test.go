package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/capitania/consimar/internal/domain"
)

func newWatchlistFixture() (*mockWatchlistRepo, *mockSignal, *WatchlistUsecase) {
	repo := newMockWatchlistRepo()
	signal := &mockSignal{}
	return repo, signal, NewWatchlistUsecase(repo, repo, repo, signal)
}

func TestAddProhibitedVessel(t *testing.T) {
	repo, signal, uc := newWatchlistFixture()

	entry := domain.ProhibitedVessel{NombreEmbarcacion: "Gaviota", Folio: "F-101", Motivo: "Orden judicial"}
	created, err := uc.AddProhibitedVessel(context.Background(), entry, adminActor())
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an assigned id")
	}
	if created.CreadoPorID != "admin-1" {
		t.Errorf("expected creator admin-1, got %s", created.CreadoPorID)
	}
	if len(repo.vessels) != 1 {
		t.Fatal("expected one stored entry")
	}
	if len(signal.events) != 1 || signal.events[0].Table != domain.TableEmbarcacionesProhibida {
		t.Errorf("expected one change event, got %v", signal.events)
	}
}

func TestAddProhibitedVesselDuplicateFolio(t *testing.T) {
	_, _, uc := newWatchlistFixture()

	entry := domain.ProhibitedVessel{NombreEmbarcacion: "Gaviota", Folio: "F-101", Motivo: "Orden judicial"}
	if _, err := uc.AddProhibitedVessel(context.Background(), entry, adminActor()); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := uc.AddProhibitedVessel(context.Background(), entry, adminActor())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAddProhibitedPersonDuplicateCI(t *testing.T) {
	_, _, uc := newWatchlistFixture()

	entry := domain.ProhibitedPerson{NombreCompleto: "Pedro Ruiz", CI: "90020254321", Motivo: "Causa abierta"}
	if _, err := uc.AddProhibitedPerson(context.Background(), entry, adminActor()); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := uc.AddProhibitedPerson(context.Background(), entry, adminActor())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAddWatchlistEntryMissingFields(t *testing.T) {
	_, _, uc := newWatchlistFixture()

	_, err := uc.AddProhibitedVessel(context.Background(), domain.ProhibitedVessel{Folio: "F-1"}, adminActor())
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddWatchlistEntryVisualizadorForbidden(t *testing.T) {
	_, _, uc := newWatchlistFixture()
	actor := domain.User{ID: "view-1", Role: domain.RoleVisualizador}

	_, err := uc.AddObservedPerson(context.Background(), domain.ObservedPerson{NombreCompleto: "Ana", CI: "1", Motivo: "x"}, actor)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRemoveProhibitedVesselCreatorOrAdminOnly(t *testing.T) {
	repo, _, uc := newWatchlistFixture()
	repo.vessels["pv-1"] = domain.ProhibitedVessel{ID: "pv-1", Folio: "F-101", CreadoPorID: "op-1"}

	stranger := domain.User{ID: "op-2", Role: domain.RoleOperador}
	if err := uc.RemoveProhibitedVessel(context.Background(), "pv-1", stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-creator, got %v", err)
	}

	creator := domain.User{ID: "op-1", Role: domain.RoleOperador}
	if err := uc.RemoveProhibitedVessel(context.Background(), "pv-1", creator); err != nil {
		t.Fatalf("creator delete failed: %v", err)
	}

	repo.vessels["pv-2"] = domain.ProhibitedVessel{ID: "pv-2", Folio: "F-102", CreadoPorID: "op-1"}
	if err := uc.RemoveProhibitedVessel(context.Background(), "pv-2", adminActor()); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if len(repo.vessels) != 0 {
		t.Fatal("expected both entries removed")
	}
}

func TestUpdateProhibitedVesselKeepsCreator(t *testing.T) {
	repo, _, uc := newWatchlistFixture()
	repo.vessels["pv-1"] = domain.ProhibitedVessel{ID: "pv-1", NombreEmbarcacion: "Gaviota", Folio: "F-101", Motivo: "x", CreadoPorID: "op-1"}

	updated := domain.ProhibitedVessel{ID: "pv-1", NombreEmbarcacion: "Gaviota II", Folio: "F-101", Motivo: "y"}
	if err := uc.UpdateProhibitedVessel(context.Background(), updated, adminActor()); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if repo.vessels["pv-1"].CreadoPorID != "op-1" {
		t.Errorf("update must not reassign the creator, got %s", repo.vessels["pv-1"].CreadoPorID)
	}
}

func TestUpdateObservedPersonDuplicateCI(t *testing.T) {
	repo, _, uc := newWatchlistFixture()
	repo.observed["obs-1"] = domain.ObservedPerson{ID: "obs-1", NombreCompleto: "Ana Díaz", CI: "P-778899"}
	repo.observed["obs-2"] = domain.ObservedPerson{ID: "obs-2", NombreCompleto: "Luis Gómez", CI: "91030312345"}

	updated := domain.ObservedPerson{ID: "obs-2", NombreCompleto: "Luis Gómez", CI: "P-778899", Motivo: "x"}
	err := uc.UpdateObservedPerson(context.Background(), updated, adminActor())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Keeping the same CI must still update.
	same := domain.ObservedPerson{ID: "obs-2", NombreCompleto: "Luis Gómez Pérez", CI: "91030312345", Motivo: "x"}
	if err := uc.UpdateObservedPerson(context.Background(), same, adminActor()); err != nil {
		t.Fatalf("same-CI update failed: %v", err)
	}
}

func TestObservedSet(t *testing.T) {
	repo, _, uc := newWatchlistFixture()
	repo.observed["obs-1"] = domain.ObservedPerson{ID: "obs-1", NombreCompleto: "Ana Díaz", CI: "P-778899"}

	set, err := uc.ObservedSet(context.Background())
	if err != nil {
		t.Fatalf("observed set failed: %v", err)
	}
	if !set["P-778899"] {
		t.Error("expected P-778899 in the observed set")
	}
	if set["otro"] {
		t.Error("unexpected CI in the observed set")
	}
}

func TestObservedPersonNeverBlocksDeparture(t *testing.T) {
	repo, _, _ := newWatchlistFixture()
	repo.observed["obs-1"] = domain.ObservedPerson{ID: "obs-1", NombreCompleto: "Juan Pérez", CI: "85010112345"}

	// The checker only consults the prohibition lists.
	checker := NewProhibitionChecker(newMockProhibitionLookup())
	block, err := checker.Check(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if block != nil {
		t.Fatalf("watch-listed person must not block, got: %s", block.Message)
	}
}
