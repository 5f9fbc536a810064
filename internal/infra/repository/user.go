package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var row models.Usuario
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "usuario"}
		}
		return domain.User{}, err
	}
	return userFromModel(row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, _, err := r.GetCredentials(ctx, username)
	return u, err
}

func (r *UserRepository) GetCredentials(ctx context.Context, username string) (domain.User, string, error) {
	var row models.Usuario
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, "", domain.NotFoundError{Resource: "usuario"}
		}
		return domain.User{}, "", err
	}
	return userFromModel(row), row.PasswordHash, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []models.Usuario
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromModel(row))
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, u domain.User, passwordHash string) error {
	row := models.Usuario{
		ID:                           u.ID,
		Username:                     u.Username,
		PasswordHash:                 passwordHash,
		Role:                         string(u.Role),
		Basificacion:                 u.Basificacion,
		NombreEmbarcacionPropietario: u.NombreEmbarcacionPropietario,
		FolioEmbarcacionPropietario:  u.FolioEmbarcacionPropietario,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *UserRepository) Update(ctx context.Context, u domain.User) error {
	return r.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"role":                           string(u.Role),
			"basificacion":                   u.Basificacion,
			"nombre_embarcacion_propietario": u.NombreEmbarcacionPropietario,
			"folio_embarcacion_propietario":  u.FolioEmbarcacionPropietario,
		}).Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Usuario{}, "id = ?", id).Error
}

func userFromModel(row models.Usuario) domain.User {
	return domain.User{
		ID:                           row.ID,
		Username:                     row.Username,
		Role:                         domain.Role(row.Role),
		Basificacion:                 row.Basificacion,
		NombreEmbarcacionPropietario: row.NombreEmbarcacionPropietario,
		FolioEmbarcacionPropietario:  row.FolioEmbarcacionPropietario,
		CDate:                        row.CDate,
	}
}
