package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/infra/database/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m domain.Message) error {
	row := models.Mensaje{
		ID:           m.ID,
		Destinatario: m.Destinatario,
		Metodo:       m.Metodo,
		Texto:        m.Texto,
		EnviadoPorID: m.EnviadoPorID,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *MessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	var rows []models.Mensaje
	if err := r.db.WithContext(ctx).Order("c_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Message{
			ID:           row.ID,
			Destinatario: row.Destinatario,
			Metodo:       row.Metodo,
			Texto:        row.Texto,
			EnviadoPorID: row.EnviadoPorID,
			CDate:        row.CDate,
		})
	}
	return out, nil
}
