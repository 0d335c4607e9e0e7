package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/metrics"
)

const chaveInicio = "metricas:inicio"

// RegistrarMetricas mede cada consulta executada pelo gorm.
func RegistrarMetricas(database *gorm.DB) error {
	cb := database.Callback()
	registros := []struct {
		nome     string
		operacao string
		before   func(string, func(*gorm.DB)) error
		after    func(string, func(*gorm.DB)) error
	}{
		{"query", "select", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"row", "select", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"create", "upsert", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"raw", "exec", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, r := range registros {
		if err := r.before("metricas:antes_"+r.nome, marcarInicio); err != nil {
			return fmt.Errorf("registrar callback %s: %w", r.nome, err)
		}
		if err := r.after("metricas:depois_"+r.nome, registrar(r.operacao)); err != nil {
			return fmt.Errorf("registrar callback %s: %w", r.nome, err)
		}
	}
	return nil
}

func marcarInicio(tx *gorm.DB) {
	tx.InstanceSet(chaveInicio, time.Now())
}

func registrar(operacao string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(chaveInicio)
		if !ok {
			return
		}
		inicio, ok := v.(time.Time)
		if !ok {
			return
		}
		tabela := tx.Statement.Table
		if tabela == "" {
			tabela = "sql"
		}
		var codigo string
		if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			codigo = CodigoErro(tx.Error)
		}
		metrics.RecordDBQuery(operacao, tabela, time.Since(inicio), codigo)
	}
}

// CodigoErro classifica err com baixa cardinalidade: o SQLSTATE quando vem do
// PostgreSQL, senão timeout, cancelado ou outro.
func CodigoErro(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		return pgErr.Code
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelado"
	default:
		return "outro"
	}
}
