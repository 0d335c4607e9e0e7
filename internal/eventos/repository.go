package eventos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/models"
)

type Repository interface {
	ListarPorDigitos(ctx context.Context, digitos string) ([]models.Evento, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListarPorDigitos(ctx context.Context, digitos string) ([]models.Evento, error) {
	eventos := []models.Evento{}
	err := r.db.WithContext(ctx).
		Table("vw_eventos").
		Select("chave_fun, TO_CHAR(periodo, 'YYYY-MM-DD') AS periodo, dsc_evento, total, ponto_evento, total_pontos_evento, digitos").
		Where("digitos = ?", digitos).
		Order("periodo DESC").
		Find(&eventos).Error
	if err != nil {
		return nil, fmt.Errorf("listar eventos: %w", err)
	}
	return eventos, nil
}
