package usecase

import (
	"fmt"
	"regexp"

	"github.com/capitania/consimar/internal/domain"
)

var (
	soloDigitos = regexp.MustCompile(`^\d+$`)
	sinEspacios = regexp.MustCompile(`^\S+$`)
)

// ValidateDraft checks a departure draft against the acting user and
// returns a field -> message map. All rules are evaluated; the map is
// empty when the draft is valid.
func ValidateDraft(draft domain.DispatchDraft, actor domain.User) map[string]string {
	errs := map[string]string{}

	if draft.NombreEmbarcacion == "" {
		errs["nombreEmbarcacion"] = "Nombre de la embarcación es obligatorio."
	}
	if draft.Folio == "" {
		errs["folio"] = "Folio es obligatorio."
	}
	if draft.Basificacion == "" {
		errs["basificacion"] = "Basificación es obligatoria."
	}
	if actor.Role == domain.RoleOperador && draft.Basificacion != actor.Basificacion {
		errs["basificacion"] = fmt.Sprintf("Debe registrar en su basificación: %s", actor.Basificacion)
	}
	if actor.Role == domain.RoleOperadorPropietario && draft.Folio != actor.OwnFolio() {
		errs["folio"] = fmt.Sprintf("Solo puede registrar su embarcación: %s", actor.OwnFolio())
	}

	if draft.ZonaDespacho == "" {
		errs["zonaDespacho"] = "Zona de despacho (destino) es obligatoria."
	}
	if draft.TiempoDespacho <= 0 {
		errs["tiempoDespacho"] = "Tiempo de despacho debe ser un número positivo."
	}
	if draft.FechaHoraSalida.IsZero() {
		errs["fechaHoraSalida"] = "Fecha y hora de salida son obligatorias."
	}
	if draft.Propulsion == "" {
		errs["propulsion"] = "Propulsión es obligatoria."
	}
	if draft.Propulsion == domain.PropulsionOtros && draft.OtraPropulsion == "" {
		errs["otraPropulsion"] = "Especifique la propulsión."
	}

	if !draft.Propietario.Completa() && !draft.Patron.Completa() {
		errs["propietarioPatron"] = "Debe proporcionar al menos el nombre y CI del Propietario o del Patrón."
	}

	if draft.Propietario.Presente() {
		validatePersona(errs, draft.Propietario, "propietario", false)
	}
	if draft.Patron.Presente() {
		validatePersona(errs, draft.Patron, "patron", false)
	}
	for i, t := range draft.Tripulantes {
		validatePersona(errs, t, fmt.Sprintf("tripulantes_%d", i), false)
	}
	for i, p := range draft.Pasajeros {
		validatePersona(errs, p, fmt.Sprintf("pasajeros_%d", i), true)
	}

	return errs
}

// validatePersona applies the per-person rules. A persona with neither
// name nor CI produces no errors so the form can keep empty rows around.
func validatePersona(errs map[string]string, p domain.Persona, prefix string, pasajero bool) {
	ciKey := prefix + "_ci"
	if pasajero {
		ciKey = prefix + "_ciPasaporte"
	}

	if p.NombreApellidos != "" && p.CI == "" {
		errs[ciKey] = "CI/Pasaporte es obligatorio si el nombre está presente."
	}
	if p.CI != "" && p.NombreApellidos == "" {
		errs[prefix+"_nombreApellidos"] = "Nombre es obligatorio si el CI/Pasaporte está presente."
	}

	if p.Completa() {
		if p.DocumentoSalida == "" {
			errs[prefix+"_documentoSalida"] = "Documento de salida es obligatorio."
		}
		if p.NumeroPermiso == "" {
			errs[prefix+"_numeroPermiso"] = "Número de permiso es obligatorio."
		} else if !sinEspacios.MatchString(p.NumeroPermiso) {
			errs[prefix+"_numeroPermiso"] = "Número de permiso no puede contener espacios."
		}
	}

	if p.Telefono != "" && !soloDigitos.MatchString(p.Telefono) {
		errs[prefix+"_telefono"] = "Teléfono debe ser numérico."
	}
}
