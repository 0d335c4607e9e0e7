// Package db abre o pool de conexões com o PostgreSQL via gorm. O pool é
// criado uma vez no main e repassado aos repositórios; cada consulta pega uma
// conexão e a devolve ao terminar, inclusive em erro.
package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/config"
	"github.com/desempenho/api-motoristas/internal/logging"
)

// Conectar abre o pool, aplica os limites e confirma a conexão com um ping.
func Conectar(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	usuario, senha, err := credenciais(ctx, cfg)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(postgres.Open(cfg.DSN(usuario, senha)), &gorm.Config{
		Logger: NovoLogger(cfg.SlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir conexão com o banco: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("obter pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping no banco: %w", err)
	}

	if err := RegistrarMetricas(database); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logging.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("conectado ao PostgreSQL")
	return database, nil
}

// Fechar devolve todas as conexões do pool.
func Fechar(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping é usado pelo /healthz.
func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func credenciais(ctx context.Context, cfg config.DatabaseConfig) (string, string, error) {
	if cfg.User != "" && cfg.Password != "" {
		return cfg.User, cfg.Password, nil
	}
	c, err := RecuperarCredenciais(ctx, cfg.SecretID)
	if err != nil {
		return "", "", err
	}
	return c.Username, c.Password, nil
}
