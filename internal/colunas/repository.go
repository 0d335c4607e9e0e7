package colunas

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/desempenho/api-motoristas/internal/models"
)

var ErrNaoEncontrada = errors.New("configuração não encontrada")

type Repository interface {
	Salvar(ctx context.Context, c *models.ConfigColuna) error
	Listar(ctx context.Context, empresa, tela string) ([]models.ConfigColuna, error)
	Buscar(ctx context.Context, empresa, tela, coluna string) (*models.ConfigColuna, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Salvar faz o upsert pela chave (empresa, tela, coluna) e preenche c com a
// linha gravada.
func (r *repositoryImpl) Salvar(ctx context.Context, c *models.ConfigColuna) error {
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "empresa"}, {Name: "tela"}, {Name: "coluna"}},
				DoUpdates: clause.AssignmentColumns([]string{"visivel", "largura", "ordem", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(c).Error
	if err != nil {
		return fmt.Errorf("salvar config de coluna: %w", err)
	}
	return nil
}

func (r *repositoryImpl) Listar(ctx context.Context, empresa, tela string) ([]models.ConfigColuna, error) {
	cs := []models.ConfigColuna{}
	err := r.db.WithContext(ctx).
		Where("empresa = ? AND tela = ?", empresa, tela).
		Order("ordem ASC, coluna ASC").
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("listar config de colunas: %w", err)
	}
	return cs, nil
}

func (r *repositoryImpl) Buscar(ctx context.Context, empresa, tela, coluna string) (*models.ConfigColuna, error) {
	var c models.ConfigColuna
	err := r.db.WithContext(ctx).
		Where("empresa = ? AND tela = ? AND coluna = ?", empresa, tela, coluna).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNaoEncontrada
	}
	if err != nil {
		return nil, fmt.Errorf("buscar config de coluna: %w", err)
	}
	return &c, nil
}
