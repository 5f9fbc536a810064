package rest

import (
	"testing"
	"time"

	"github.com/capitania/consimar/internal/domain"
)

func TestExportRowMatchesHeader(t *testing.T) {
	entrada := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	obs := "Sin novedad"
	v := domain.Vessel{
		NombreEmbarcacion:    "Gaviota",
		Folio:                "F-101",
		Basificacion:         "Marina Hemingway",
		ZonaDespacho:         "Bahía Norte",
		TiempoDespacho:       7200,
		UnidadTiempoDespacho: "horas",
		FechaHoraSalida:      time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC),
		Propulsion:           domain.PropulsionMotor,
		Propietario:          domain.Persona{NombreApellidos: "Juan Pérez", CI: "85010112345"},
		Tripulantes:          []domain.Persona{{NombreApellidos: "Luis Gómez", CI: "91030312345"}},
		Estado:               domain.StateEnPuerto,
		FechaHoraEntrada:     &entrada,
		ObservacionesEntrada: &obs,
	}

	row := exportRow(v, map[string]bool{"85010112345": true})
	if len(row) != len(exportHeader) {
		t.Fatalf("row has %d columns, header has %d", len(row), len(exportHeader))
	}
	if row[4] != "2 horas" {
		t.Errorf("expected '2 horas', got %q", row[4])
	}
	if row[5] != "30/08/2026 08:00" {
		t.Errorf("unexpected departure date: %q", row[5])
	}
	if row[9] != "SÍ" {
		t.Errorf("observed owner must export SÍ, got %q", row[9])
	}
	if row[12] != "NO" {
		t.Errorf("absent patrón must export NO, got %q", row[12])
	}
	if row[13] != "Luis Gómez (91030312345)" {
		t.Errorf("unexpected crew cell: %q", row[13])
	}
}

func TestFormatTiempoDespachoDias(t *testing.T) {
	v := domain.Vessel{TiempoDespacho: 129600, UnidadTiempoDespacho: "dias"}
	if got := formatTiempoDespacho(v); got != "1.5 días" {
		t.Fatalf("expected '1.5 días', got %q", got)
	}
}

func TestFormatPropulsionOtros(t *testing.T) {
	otra := "paleta"
	v := domain.Vessel{Propulsion: domain.PropulsionOtros, OtraPropulsion: &otra}
	if got := formatPropulsion(v); got != "otros (paleta)" {
		t.Fatalf("expected 'otros (paleta)', got %q", got)
	}
}
