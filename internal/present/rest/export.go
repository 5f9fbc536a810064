package rest

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/present/rest/presenter"
)

var exportHeader = []string{
	"Nombre Embarcación",
	"Folio",
	"Basificación (Atraque)",
	"Zona Despacho (Destino)",
	"Tiempo Despacho Autorizado",
	"Fecha Salida",
	"Propulsión",
	"Propietario",
	"CI Propietario",
	"Propietario Observado",
	"Patrón",
	"CI Patrón",
	"Patrón Observado",
	"Tripulantes",
	"Pasajeros",
	"Comunicación a Bordo",
	"Fecha Entrada",
	"Observaciones Entrada",
	"Estado",
}

// handleExport streams the requester's visible records as CSV, one row
// per departure, respecting the same role scope as the JSON listing.
func (h *Handler) handleExport(c echo.Context) error {
	ctx := c.Request().Context()

	vessels, err := h.dispatch.ListVessels(ctx, requester(c))
	if err != nil {
		return presenter.HandleError(c, err)
	}
	observed, err := h.watchlist.ObservedSet(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	filename := fmt.Sprintf("embarcaciones_%s.csv", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Response())
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, v := range vessels {
		if err := w.Write(exportRow(v, observed)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportRow(v domain.Vessel, observed map[string]bool) []string {
	return []string{
		v.NombreEmbarcacion,
		v.Folio,
		v.Basificacion,
		v.ZonaDespacho,
		formatTiempoDespacho(v),
		formatFecha(v.FechaHoraSalida),
		formatPropulsion(v),
		v.Propietario.NombreApellidos,
		v.Propietario.CI,
		siNo(observed[v.Propietario.CI] && v.Propietario.CI != ""),
		v.Patron.NombreApellidos,
		v.Patron.CI,
		siNo(observed[v.Patron.CI] && v.Patron.CI != ""),
		joinPersonas(v.Tripulantes),
		joinPersonas(v.Pasajeros),
		v.ComunicacionAbordo,
		formatFechaPtr(v.FechaHoraEntrada),
		derefString(v.ObservacionesEntrada),
		string(v.Estado),
	}
}

// formatTiempoDespacho renders the stored seconds back in the unit the
// form was submitted with.
func formatTiempoDespacho(v domain.Vessel) string {
	if v.TiempoDespacho <= 0 {
		return ""
	}
	if v.UnidadTiempoDespacho == "dias" {
		return fmt.Sprintf("%g días", float64(v.TiempoDespacho)/86400)
	}
	return fmt.Sprintf("%g horas", float64(v.TiempoDespacho)/3600)
}

func formatPropulsion(v domain.Vessel) string {
	if v.Propulsion == domain.PropulsionOtros && v.OtraPropulsion != nil {
		return fmt.Sprintf("%s (%s)", v.Propulsion, *v.OtraPropulsion)
	}
	return v.Propulsion
}

func joinPersonas(personas []domain.Persona) string {
	parts := make([]string, 0, len(personas))
	for _, p := range personas {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.NombreApellidos, p.CI))
	}
	return strings.Join(parts, "; ")
}

func formatFecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

func formatFechaPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatFecha(*t)
}

func siNo(b bool) string {
	if b {
		return "SÍ"
	}
	return "NO"
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
