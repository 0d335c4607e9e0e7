package ranking

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/models"
)

type Repository interface {
	ListarMestre(ctx context.Context, empresa, periodo string) ([]models.Mestre, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListarMestre(ctx context.Context, empresa, periodo string) ([]models.Mestre, error) {
	linhas := []models.Mestre{}
	err := r.db.WithContext(ctx).
		Where("empresa = ? AND periodo = ?", empresa, periodo).
		Order("matricula").
		Find(&linhas).Error
	if err != nil {
		return nil, fmt.Errorf("listar mestre: %w", err)
	}
	return linhas, nil
}
