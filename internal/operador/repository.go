package operador

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/desempenho/api-motoristas/internal/config"
	"github.com/desempenho/api-motoristas/internal/models"
)

var ErrNaoEncontrado = errors.New("operador não encontrado")

// Esquema descreve uma geração do identificador do operador: a coluna nas
// views, o campo do corpo de login e o tamanho exigido.
type Esquema struct {
	Coluna     string
	CampoLogin string
	Tamanho    int
}

var (
	EsquemaDigitos = Esquema{Coluna: "digitos", CampoLogin: "digitos", Tamanho: 8}
	EsquemaCPF7    = Esquema{Coluna: "sete_digitos_cpf", CampoLogin: "cpf7", Tamanho: 7}
)

func EsquemaPorNome(nome string) Esquema {
	if nome == config.EsquemaCPF7 {
		return EsquemaCPF7
	}
	return EsquemaDigitos
}

type Repository interface {
	BuscarPorIdentificador(ctx context.Context, id string) (*models.Operador, error)
	ListarMovimentos(ctx context.Context, id string) ([]models.Movimento, error)
}

type repositoryImpl struct {
	db      *gorm.DB
	esquema Esquema
}

func NewRepository(db *gorm.DB, esquema Esquema) Repository {
	return &repositoryImpl{db: db, esquema: esquema}
}

func (r *repositoryImpl) filtro(id string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: r.esquema.Coluna}, Value: id}
}

// BuscarPorIdentificador devolve o operador do período mais recente.
func (r *repositoryImpl) BuscarPorIdentificador(ctx context.Context, id string) (*models.Operador, error) {
	var ops []models.Operador
	err := r.db.WithContext(ctx).
		Table("vw_operador_movimento").
		Distinct("chave_fun", "matricula", "nome", r.esquema.Coluna, "periodo", "media_pontos", "desempenho", "ranking").
		Where(r.filtro(id)).
		Order("periodo DESC").
		Limit(1).
		Find(&ops).Error
	if err != nil {
		return nil, fmt.Errorf("buscar operador: %w", err)
	}
	if len(ops) == 0 {
		return nil, ErrNaoEncontrado
	}
	return &ops[0], nil
}

func (r *repositoryImpl) ListarMovimentos(ctx context.Context, id string) ([]models.Movimento, error) {
	movs := []models.Movimento{}
	err := r.db.WithContext(ctx).
		Table("vw_operador_movimento").
		Where(r.filtro(id)).
		Order("data_movimento DESC").
		Find(&movs).Error
	if err != nil {
		return nil, fmt.Errorf("listar movimentos: %w", err)
	}
	return movs, nil
}
