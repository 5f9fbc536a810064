package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/infra/database/models"
)

// WatchlistRepository backs the exclusion and watch lists. It implements
// the ProhibitedVessel/ProhibitedPerson/ObservedPerson repositories plus
// the lookup surface the prohibition checker uses.
type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) GetProhibitedVesselByFolio(ctx context.Context, folio string) (domain.ProhibitedVessel, error) {
	var row models.EmbarcacionProhibida
	err := r.db.WithContext(ctx).Where("folio = ?", folio).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProhibitedVessel{}, domain.NotFoundError{Resource: "prohibicion de embarcacion"}
		}
		return domain.ProhibitedVessel{}, err
	}
	return prohibitedVesselFromModel(row), nil
}

func (r *WatchlistRepository) GetProhibitedVessel(ctx context.Context, id string) (domain.ProhibitedVessel, error) {
	var row models.EmbarcacionProhibida
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProhibitedVessel{}, domain.NotFoundError{Resource: "prohibicion de embarcacion"}
		}
		return domain.ProhibitedVessel{}, err
	}
	return prohibitedVesselFromModel(row), nil
}

func (r *WatchlistRepository) ListProhibitedVessels(ctx context.Context) ([]domain.ProhibitedVessel, error) {
	var rows []models.EmbarcacionProhibida
	if err := r.db.WithContext(ctx).Order("c_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ProhibitedVessel, 0, len(rows))
	for _, row := range rows {
		out = append(out, prohibitedVesselFromModel(row))
	}
	return out, nil
}

func (r *WatchlistRepository) CreateProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel) error {
	row := models.EmbarcacionProhibida{
		ID:                p.ID,
		NombreEmbarcacion: p.NombreEmbarcacion,
		Folio:             p.Folio,
		Motivo:            p.Motivo,
		EntidadProhibe:    optional(p.EntidadProhibe),
		CreadoPorID:       p.CreadoPorID,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *WatchlistRepository) UpdateProhibitedVessel(ctx context.Context, p domain.ProhibitedVessel) error {
	return r.db.WithContext(ctx).
		Model(&models.EmbarcacionProhibida{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"nombre_embarcacion": p.NombreEmbarcacion,
			"folio":              p.Folio,
			"motivo":             p.Motivo,
			"entidad_prohibe":    optional(p.EntidadProhibe),
		}).Error
}

func (r *WatchlistRepository) DeleteProhibitedVessel(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.EmbarcacionProhibida{}, "id = ?", id).Error
}

func (r *WatchlistRepository) GetProhibitedPersonByCI(ctx context.Context, ci string) (domain.ProhibitedPerson, error) {
	var row models.PersonaProhibida
	err := r.db.WithContext(ctx).Where("ci = ?", ci).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProhibitedPerson{}, domain.NotFoundError{Resource: "prohibicion de persona"}
		}
		return domain.ProhibitedPerson{}, err
	}
	return prohibitedPersonFromModel(row), nil
}

func (r *WatchlistRepository) GetProhibitedPerson(ctx context.Context, id string) (domain.ProhibitedPerson, error) {
	var row models.PersonaProhibida
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProhibitedPerson{}, domain.NotFoundError{Resource: "prohibicion de persona"}
		}
		return domain.ProhibitedPerson{}, err
	}
	return prohibitedPersonFromModel(row), nil
}

func (r *WatchlistRepository) ListProhibitedPersons(ctx context.Context) ([]domain.ProhibitedPerson, error) {
	var rows []models.PersonaProhibida
	if err := r.db.WithContext(ctx).Order("c_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ProhibitedPerson, 0, len(rows))
	for _, row := range rows {
		out = append(out, prohibitedPersonFromModel(row))
	}
	return out, nil
}

// ListProhibitedPersonsByCI is the single batched query behind the
// departure checker.
func (r *WatchlistRepository) ListProhibitedPersonsByCI(ctx context.Context, cis []string) ([]domain.ProhibitedPerson, error) {
	if len(cis) == 0 {
		return nil, nil
	}
	var rows []models.PersonaProhibida
	if err := r.db.WithContext(ctx).Where("ci IN ?", cis).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ProhibitedPerson, 0, len(rows))
	for _, row := range rows {
		out = append(out, prohibitedPersonFromModel(row))
	}
	return out, nil
}

func (r *WatchlistRepository) CreateProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson) error {
	row := models.PersonaProhibida{
		ID:             p.ID,
		NombreCompleto: p.NombreCompleto,
		CI:             p.CI,
		Motivo:         p.Motivo,
		EntidadProhibe: optional(p.EntidadProhibe),
		CreadoPorID:    p.CreadoPorID,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *WatchlistRepository) UpdateProhibitedPerson(ctx context.Context, p domain.ProhibitedPerson) error {
	return r.db.WithContext(ctx).
		Model(&models.PersonaProhibida{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"nombre_completo": p.NombreCompleto,
			"ci":              p.CI,
			"motivo":          p.Motivo,
			"entidad_prohibe": optional(p.EntidadProhibe),
		}).Error
}

func (r *WatchlistRepository) DeleteProhibitedPerson(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.PersonaProhibida{}, "id = ?", id).Error
}

func (r *WatchlistRepository) GetObservedPersonByCI(ctx context.Context, ci string) (domain.ObservedPerson, error) {
	var row models.PersonaObservada
	err := r.db.WithContext(ctx).Where("ci = ?", ci).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ObservedPerson{}, domain.NotFoundError{Resource: "persona observada"}
		}
		return domain.ObservedPerson{}, err
	}
	return observedPersonFromModel(row), nil
}

func (r *WatchlistRepository) GetObservedPerson(ctx context.Context, id string) (domain.ObservedPerson, error) {
	var row models.PersonaObservada
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ObservedPerson{}, domain.NotFoundError{Resource: "persona observada"}
		}
		return domain.ObservedPerson{}, err
	}
	return observedPersonFromModel(row), nil
}

func (r *WatchlistRepository) ListObservedPersons(ctx context.Context) ([]domain.ObservedPerson, error) {
	var rows []models.PersonaObservada
	if err := r.db.WithContext(ctx).Order("c_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ObservedPerson, 0, len(rows))
	for _, row := range rows {
		out = append(out, observedPersonFromModel(row))
	}
	return out, nil
}

func (r *WatchlistRepository) CreateObservedPerson(ctx context.Context, p domain.ObservedPerson) error {
	row := models.PersonaObservada{
		ID:             p.ID,
		NombreCompleto: p.NombreCompleto,
		CI:             p.CI,
		Motivo:         p.Motivo,
		EntidadObserva: optional(p.EntidadObserva),
		CreadoPorID:    p.CreadoPorID,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *WatchlistRepository) UpdateObservedPerson(ctx context.Context, p domain.ObservedPerson) error {
	return r.db.WithContext(ctx).
		Model(&models.PersonaObservada{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"nombre_completo": p.NombreCompleto,
			"ci":              p.CI,
			"motivo":          p.Motivo,
			"entidad_observa": optional(p.EntidadObserva),
		}).Error
}

func (r *WatchlistRepository) DeleteObservedPerson(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.PersonaObservada{}, "id = ?", id).Error
}

func prohibitedVesselFromModel(row models.EmbarcacionProhibida) domain.ProhibitedVessel {
	return domain.ProhibitedVessel{
		ID:                row.ID,
		NombreEmbarcacion: row.NombreEmbarcacion,
		Folio:             row.Folio,
		Motivo:            row.Motivo,
		EntidadProhibe:    deref(row.EntidadProhibe),
		CreadoPorID:       row.CreadoPorID,
		CDate:             row.CDate,
	}
}

func prohibitedPersonFromModel(row models.PersonaProhibida) domain.ProhibitedPerson {
	return domain.ProhibitedPerson{
		ID:             row.ID,
		NombreCompleto: row.NombreCompleto,
		CI:             row.CI,
		Motivo:         row.Motivo,
		EntidadProhibe: deref(row.EntidadProhibe),
		CreadoPorID:    row.CreadoPorID,
		CDate:          row.CDate,
	}
}

func observedPersonFromModel(row models.PersonaObservada) domain.ObservedPerson {
	return domain.ObservedPerson{
		ID:             row.ID,
		NombreCompleto: row.NombreCompleto,
		CI:             row.CI,
		Motivo:         row.Motivo,
		EntidadObserva: deref(row.EntidadObserva),
		CreadoPorID:    row.CreadoPorID,
		CDate:          row.CDate,
	}
}
