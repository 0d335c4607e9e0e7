package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/desempenho/api-motoristas/internal/logging"
)

// gormLogger envia o log do gorm para o zerolog. Registro não encontrado não
// é erro: as rotas tratam lista vazia como 404.
type gormLogger struct {
	level     logger.LogLevel
	slowQuery time.Duration
}

func NovoLogger(slowQuery time.Duration) logger.Interface {
	return &gormLogger{level: logger.Warn, slowQuery: slowQuery}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		logging.Ctx(ctx).Info().Msgf(msg, args...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		logging.Ctx(ctx).Warn().Msgf(msg, args...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		logging.Ctx(ctx).Error().Msgf(msg, args...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	duracao := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		sql, linhas := fc()
		logging.Ctx(ctx).Error().Err(err).
			Str("codigo", CodigoErro(err)).
			Str("sql", sql).
			Int64("linhas", linhas).
			Dur("duracao", duracao).
			Msg("erro na consulta")
	case l.slowQuery > 0 && duracao > l.slowQuery && l.level >= logger.Warn:
		sql, linhas := fc()
		logging.Ctx(ctx).Warn().
			Str("sql", sql).
			Int64("linhas", linhas).
			Dur("duracao", duracao).
			Msg("consulta lenta")
	case l.level >= logger.Info:
		sql, linhas := fc()
		logging.Ctx(ctx).Debug().
			Str("sql", sql).
			Int64("linhas", linhas).
			Dur("duracao", duracao).
			Msg("consulta")
	}
}
