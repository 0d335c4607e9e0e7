//go:build integration

// Package testinfra sobe dependências reais em contêiner para os testes de
// integração.
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/config"
	"github.com/desempenho/api-motoristas/internal/utils/db"
)

const (
	ImagemPostgres = "postgres:16-alpine"

	usuario = "teste"
	senha   = "teste"
	banco   = "motoristas"
)

// SkipIfNoDocker pula o teste quando não há daemon Docker acessível.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Docker indisponível")
	}
}

// NovoPostgres sobe um PostgreSQL descartável e devolve o pool aberto por
// db.Conectar. O contêiner é encerrado no fim do teste.
func NovoPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        ImagemPostgres,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     usuario,
				"POSTGRES_PASSWORD": senha,
				"POSTGRES_DB":       banco,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("subir postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("encerrar contêiner: %v", err)
		}
	})

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host do contêiner: %v", err)
	}
	porta, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("porta do contêiner: %v", err)
	}

	database, err := db.Conectar(ctx, config.DatabaseConfig{
		Host:         host,
		Port:         porta.Int(),
		Name:         banco,
		User:         usuario,
		Password:     senha,
		SSLMode:      "disable",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		SlowQuery:    time.Second,
	})
	if err != nil {
		t.Fatalf("conectar: %v", err)
	}
	t.Cleanup(func() { _ = db.Fechar(database) })
	return database
}
