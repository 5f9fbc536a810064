package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/infra/database/models"
)

type VesselRepository struct {
	db *gorm.DB
}

func NewVesselRepository(db *gorm.DB) *VesselRepository {
	return &VesselRepository{db: db}
}

// Create persists the vessel row together with its crew and passenger
// rows in one transaction. A failing child insert rolls back the parent:
// a departure record is never committed half-written.
func (r *VesselRepository) Create(ctx context.Context, v domain.Vessel) (domain.Vessel, error) {
	row := vesselToModel(v)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		for _, t := range v.Tripulantes {
			trip := models.Tripulante{
				EmbarcacionID:   row.ID,
				NombreApellidos: t.NombreApellidos,
				CI:              t.CI,
				Telefono:        optional(t.Telefono),
				DocumentoSalida: optional(t.DocumentoSalida),
				NumeroPermiso:   optional(t.NumeroPermiso),
			}
			if err := tx.Create(&trip).Error; err != nil {
				return err
			}
		}

		for _, p := range v.Pasajeros {
			pas := models.Pasajero{
				EmbarcacionID:   row.ID,
				NombreApellidos: p.NombreApellidos,
				CIPasaporte:     p.CI,
				Telefono:        optional(p.Telefono),
				DocumentoSalida: optional(p.DocumentoSalida),
				NumeroPermiso:   optional(p.NumeroPermiso),
			}
			if err := tx.Create(&pas).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Vessel{}, err
	}
	return r.GetByFolio(ctx, v.Folio)
}

func (r *VesselRepository) GetByFolio(ctx context.Context, folio string) (domain.Vessel, error) {
	var row models.Embarcacion
	err := r.db.WithContext(ctx).
		Preload("Tripulantes").
		Preload("Pasajeros").
		Where("folio = ?", folio).
		Order("c_date DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Vessel{}, domain.NotFoundError{Resource: "embarcacion"}
		}
		return domain.Vessel{}, err
	}
	return vesselFromModel(row), nil
}

func (r *VesselRepository) List(ctx context.Context) ([]domain.Vessel, error) {
	var rows []models.Embarcacion
	err := r.db.WithContext(ctx).
		Preload("Tripulantes").
		Preload("Pasajeros").
		Order("c_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	vessels := make([]domain.Vessel, 0, len(rows))
	for _, row := range rows {
		vessels = append(vessels, vesselFromModel(row))
	}
	return vessels, nil
}

func (r *VesselRepository) RegisterArrival(ctx context.Context, folio string, arr domain.Arrival, recorderID string) (domain.Vessel, error) {
	patch := map[string]any{
		"estado":                      string(domain.StateEnPuerto),
		"fecha_hora_entrada":          arr.FechaHoraLlegada,
		"observaciones_entrada":       optional(arr.Observaciones),
		"usuario_registro_entrada_id": recorderID,
		"m_date":                      time.Now(),
	}
	result := r.db.WithContext(ctx).
		Model(&models.Embarcacion{}).
		Where("folio = ? AND estado = ?", folio, string(domain.StateDespachada)).
		Updates(patch)
	if result.Error != nil {
		return domain.Vessel{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Vessel{}, domain.NotFoundError{Resource: "embarcacion despachada"}
	}
	return r.GetByFolio(ctx, folio)
}

func vesselToModel(v domain.Vessel) models.Embarcacion {
	return models.Embarcacion{
		ID:                      v.ID,
		NombreEmbarcacion:       v.NombreEmbarcacion,
		Folio:                   v.Folio,
		Basificacion:            v.Basificacion,
		ZonaDespacho:            v.ZonaDespacho,
		TiempoDespacho:          v.TiempoDespacho,
		UnidadTiempoDespacho:    v.UnidadTiempoDespacho,
		FechaHoraSalida:         v.FechaHoraSalida,
		Propulsion:              v.Propulsion,
		OtraPropulsion:          v.OtraPropulsion,
		PropietarioNombre:       optional(v.Propietario.NombreApellidos),
		PropietarioCI:           optional(v.Propietario.CI),
		PropietarioTelefono:     optional(v.Propietario.Telefono),
		PropietarioDocumento:    optional(v.Propietario.DocumentoSalida),
		PropietarioPermiso:      optional(v.Propietario.NumeroPermiso),
		PatronNombre:            optional(v.Patron.NombreApellidos),
		PatronCI:                optional(v.Patron.CI),
		PatronTelefono:          optional(v.Patron.Telefono),
		PatronDocumento:         optional(v.Patron.DocumentoSalida),
		PatronPermiso:           optional(v.Patron.NumeroPermiso),
		ComunicacionAbordo:      optional(v.ComunicacionAbordo),
		Estado:                  string(v.Estado),
		UsuarioRegistroSalidaID: v.UsuarioRegistroSalidaID,
	}
}

func vesselFromModel(row models.Embarcacion) domain.Vessel {
	v := domain.Vessel{
		ID:                       row.ID,
		NombreEmbarcacion:        row.NombreEmbarcacion,
		Folio:                    row.Folio,
		Basificacion:             row.Basificacion,
		ZonaDespacho:             row.ZonaDespacho,
		TiempoDespacho:           row.TiempoDespacho,
		UnidadTiempoDespacho:     row.UnidadTiempoDespacho,
		FechaHoraSalida:          row.FechaHoraSalida,
		Propulsion:               row.Propulsion,
		OtraPropulsion:           row.OtraPropulsion,
		ComunicacionAbordo:       deref(row.ComunicacionAbordo),
		Estado:                   domain.VesselState(row.Estado),
		FechaHoraEntrada:         row.FechaHoraEntrada,
		ObservacionesEntrada:     row.ObservacionesEntrada,
		UsuarioRegistroSalidaID:  row.UsuarioRegistroSalidaID,
		UsuarioRegistroEntradaID: row.UsuarioRegistroEntradaID,
		CDate:                    row.CDate,
		Propietario: domain.Persona{
			NombreApellidos: deref(row.PropietarioNombre),
			CI:              deref(row.PropietarioCI),
			Telefono:        deref(row.PropietarioTelefono),
			DocumentoSalida: deref(row.PropietarioDocumento),
			NumeroPermiso:   deref(row.PropietarioPermiso),
		},
		Patron: domain.Persona{
			NombreApellidos: deref(row.PatronNombre),
			CI:              deref(row.PatronCI),
			Telefono:        deref(row.PatronTelefono),
			DocumentoSalida: deref(row.PatronDocumento),
			NumeroPermiso:   deref(row.PatronPermiso),
		},
	}
	for _, t := range row.Tripulantes {
		v.Tripulantes = append(v.Tripulantes, domain.Persona{
			NombreApellidos: t.NombreApellidos,
			CI:              t.CI,
			Telefono:        deref(t.Telefono),
			DocumentoSalida: deref(t.DocumentoSalida),
			NumeroPermiso:   deref(t.NumeroPermiso),
		})
	}
	for _, p := range row.Pasajeros {
		v.Pasajeros = append(v.Pasajeros, domain.Persona{
			NombreApellidos: p.NombreApellidos,
			CI:              p.CIPasaporte,
			Telefono:        deref(p.Telefono),
			DocumentoSalida: deref(p.DocumentoSalida),
			NumeroPermiso:   deref(p.NumeroPermiso),
		})
	}
	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
