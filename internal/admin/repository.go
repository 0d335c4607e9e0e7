package admin

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/models"
)

type Repository interface {
	ListarMovimentos(ctx context.Context, admin string) ([]models.Movimento, error)
	ListarMovimentosOperador(ctx context.Context, admin, operador string) ([]models.Movimento, error)
	ListarEventos(ctx context.Context, admin, periodo string) ([]models.Evento, error)
	ListarOperadores(ctx context.Context, admin string) ([]models.Operador, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) movimentos(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("vw_movimentos_admin")
}

func (r *repositoryImpl) ListarMovimentos(ctx context.Context, admin string) ([]models.Movimento, error) {
	movs := []models.Movimento{}
	err := r.movimentos(ctx).
		Where("administrador = ?", admin).
		Order("data_movimento DESC").
		Find(&movs).Error
	if err != nil {
		return nil, fmt.Errorf("listar movimentos do administrador: %w", err)
	}
	return movs, nil
}

func (r *repositoryImpl) ListarMovimentosOperador(ctx context.Context, admin, operador string) ([]models.Movimento, error) {
	movs := []models.Movimento{}
	err := r.movimentos(ctx).
		Where("administrador = ? AND digitos = ?", admin, operador).
		Order("data_movimento DESC").
		Find(&movs).Error
	if err != nil {
		return nil, fmt.Errorf("listar movimentos do operador: %w", err)
	}
	return movs, nil
}

// ListarEventos filtra pelo mês quando periodo (YYYY-MM) não é vazio.
func (r *repositoryImpl) ListarEventos(ctx context.Context, admin, periodo string) ([]models.Evento, error) {
	eventos := []models.Evento{}
	q := r.db.WithContext(ctx).
		Table("vw_eventos_administrador").
		Where("administrador = ?", admin)
	if periodo != "" {
		q = q.Where("TO_CHAR(periodo, 'YYYY-MM') = ?", periodo)
	}
	if err := q.Order("periodo DESC").Find(&eventos).Error; err != nil {
		return nil, fmt.Errorf("listar eventos do administrador: %w", err)
	}
	return eventos, nil
}

func (r *repositoryImpl) ListarOperadores(ctx context.Context, admin string) ([]models.Operador, error) {
	ops := []models.Operador{}
	err := r.movimentos(ctx).
		Distinct("chave_fun", "matricula", "nome", "digitos", "media_pontos", "desempenho", "ranking", "empresa").
		Where("administrador = ?", admin).
		Order("nome").
		Find(&ops).Error
	if err != nil {
		return nil, fmt.Errorf("listar operadores: %w", err)
	}
	return ops, nil
}
