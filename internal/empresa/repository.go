package empresa

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/models"
)

var ErrNaoEncontrada = errors.New("empresa não encontrada")

type Repository interface {
	BuscarPorDigitos(ctx context.Context, digitos string) (*models.EmpresaAdmin, error)
	BuscarPorCodigo(ctx context.Context, codigo string) (*models.EmpresaAdmin, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) BuscarPorDigitos(ctx context.Context, digitos string) (*models.EmpresaAdmin, error) {
	return r.buscar(ctx, "digitos = ?", digitos)
}

func (r *repositoryImpl) BuscarPorCodigo(ctx context.Context, codigo string) (*models.EmpresaAdmin, error) {
	return r.buscar(ctx, "codigo_empresa = ?", codigo)
}

func (r *repositoryImpl) buscar(ctx context.Context, where string, valor string) (*models.EmpresaAdmin, error) {
	var e models.EmpresaAdmin
	err := r.db.WithContext(ctx).
		Select("codigo_empresa", "nome_empresa", "digitos").
		Where(where, valor).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNaoEncontrada
	}
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	return &e, nil
}
