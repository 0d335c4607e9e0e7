package economia

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/models"
)

// NUMERIC nulo não cabe em decimal.Decimal; as colunas saem com COALESCE.
const colunasEconomia = `unidade, empresa, periodo,
	COALESCE(base, 0) AS base,
	COALESCE(km, 0) AS km,
	COALESCE(qtde, 0) AS qtde,
	COALESCE(media, 0) AS media,
	COALESCE(percentual, 0) AS percentual,
	COALESCE(valor_litro, 0) AS valor_litro,
	COALESCE(qtde_economia, 0) AS qtde_economia,
	COALESCE(valor_economia, 0) AS valor_economia`

const colunasPeriodo = `,
	TO_CHAR(periodo, 'YYYY-MM') AS periodo_formatado,
	TO_CHAR(periodo, 'MM/YYYY') AS periodo_exibicao,
	EXTRACT(YEAR FROM periodo)::int AS ano,
	EXTRACT(MONTH FROM periodo)::int AS mes`

const ordemUnidades = `periodo DESC,
	CASE WHEN unidade = 'GERAL' THEN 1 WHEN unidade = 'MATRIZ' THEN 2 ELSE 3 END,
	unidade`

type SugestaoPrincipal struct {
	Unidade       string          `gorm:"column:unidade" json:"unidade"`
	TotalEconomia decimal.Decimal `gorm:"column:total_economia" json:"total_economia"`
	Sugestao      string          `gorm:"-" json:"sugestao"`
}

type Repository interface {
	ListarRegistros(ctx context.Context, empresa string) ([]models.RegistroEconomia, error)
	ListarDashboard(ctx context.Context, empresa, periodo string) ([]models.RegistroEconomia, error)
	ListarUnidades(ctx context.Context, empresa string) ([]string, error)
	MaiorEconomia(ctx context.Context, empresa string) (*SugestaoPrincipal, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListarRegistros(ctx context.Context, empresa string) ([]models.RegistroEconomia, error) {
	regs := []models.RegistroEconomia{}
	err := r.db.WithContext(ctx).
		Table("economia_combustivel").
		Select(colunasEconomia).
		Where("empresa = ?", empresa).
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("listar economia: %w", err)
	}
	return regs, nil
}

// ListarDashboard filtra pelo mês quando periodo não é vazio.
func (r *repositoryImpl) ListarDashboard(ctx context.Context, empresa, periodo string) ([]models.RegistroEconomia, error) {
	regs := []models.RegistroEconomia{}
	q := r.db.WithContext(ctx).
		Table("vw_economia_dashboard").
		Select(colunasEconomia+colunasPeriodo).
		Where("empresa = ?", empresa)
	if periodo != "" {
		q = q.Where("TO_CHAR(periodo, 'YYYY-MM') = ?", periodo)
	}
	if err := q.Order(ordemUnidades).Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("listar dashboard de economia: %w", err)
	}
	return regs, nil
}

func (r *repositoryImpl) ListarUnidades(ctx context.Context, empresa string) ([]string, error) {
	unidades := []string{}
	err := r.db.WithContext(ctx).
		Table("economia_combustivel").
		Distinct("unidade").
		Where("empresa = ?", empresa).
		Order("unidade").
		Pluck("unidade", &unidades).Error
	if err != nil {
		return nil, fmt.Errorf("listar unidades: %w", err)
	}
	return unidades, nil
}

// MaiorEconomia devolve a unidade (fora GERAL) com maior economia somada,
// ou nil se não houver nenhuma.
func (r *repositoryImpl) MaiorEconomia(ctx context.Context, empresa string) (*SugestaoPrincipal, error) {
	var s []SugestaoPrincipal
	err := r.db.WithContext(ctx).
		Table("economia_combustivel").
		Select("unidade, COALESCE(SUM(valor_economia), 0) AS total_economia").
		Where("empresa = ? AND unidade <> ?", empresa, models.UnidadeGeral).
		Group("unidade").
		Order("total_economia DESC").
		Limit(1).
		Find(&s).Error
	if err != nil {
		return nil, fmt.Errorf("buscar unidade de maior economia: %w", err)
	}
	if len(s) == 0 {
		return nil, nil
	}
	return &s[0], nil
}
