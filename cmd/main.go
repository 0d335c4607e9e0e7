package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/desempenho/api-motoristas/internal/auth"
	"github.com/desempenho/api-motoristas/internal/config"
	"github.com/desempenho/api-motoristas/internal/logging"
	"github.com/desempenho/api-motoristas/internal/servidor"
	"github.com/desempenho/api-motoristas/internal/utils/db"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("configuração inválida")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conectarCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	database, err := db.Conectar(conectarCtx, cfg.Database)
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("erro ao conectar no banco")
	}
	defer func() {
		if err := db.Fechar(database); err != nil {
			logging.Warn().Err(err).Msg("erro ao fechar o pool")
		}
	}()

	tokens := auth.NovoServico(cfg.Security)
	if tokens.Habilitado() {
		logging.Info().Dur("validade", cfg.Security.TokenValidade).Msg("emissão de token habilitada")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      servidor.Novo(database, cfg, tokens),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	erros := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Str("esquema_operador", cfg.API.EsquemaOperador).
			Msg("servidor rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			erros <- err
		}
	}()

	select {
	case err := <-erros:
		logging.Error().Err(err).Msg("servidor parou")
	case <-ctx.Done():
		logging.Info().Msg("encerrando")
	}

	desligar, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(desligar); err != nil {
		logging.Error().Err(err).Msg("erro no shutdown")
	}
}
