// Package config carrega a configuração da API: valores padrão, arquivo YAML
// opcional e variáveis de ambiente, nesta ordem de precedência.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/desempenho/api-motoristas/internal/validacao"
)

// Esquemas de identificação do operador.
const (
	EsquemaDigitos = "digitos"
	EsquemaCPF7    = "cpf7"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// DatabaseConfig descreve a conexão com o PostgreSQL. Quando User e Password
// estão vazios e SecretID está preenchido, as credenciais vêm do Secrets Manager.
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Name            string        `koanf:"name" validate:"required"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	SSLMode         string        `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	SecretID        string        `koanf:"secret_id"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	SlowQuery       time.Duration `koanf:"slow_query"`
}

type APIConfig struct {
	// EsquemaOperador escolhe a geração do identificador do operador:
	// "digitos" (8 caracteres) ou "cpf7" (sete dígitos do CPF).
	EsquemaOperador string `koanf:"esquema_operador" validate:"oneof=digitos cpf7"`
}

type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	TokenHabilitado   bool          `koanf:"token_habilitado"`
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenValidade     time.Duration `koanf:"token_validade"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate confere as tags de validação e as regras que envolvem mais de um campo.
func (c *Config) Validate() error {
	if err := validacao.Struct(c); err != nil {
		return err
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) maior que database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if (c.Database.User == "" || c.Database.Password == "") && c.Database.SecretID == "" {
		return errors.New("credenciais do banco ausentes: defina PG_USER/PG_PASSWORD ou DB_SECRET_ID")
	}
	if c.Security.TokenHabilitado && len(c.Security.JWTSecret) < 32 {
		return errors.New("JWT_SECRET deve ter pelo menos 32 caracteres quando TOKEN_HABILITADO=true")
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs == 0 || c.Security.RateLimitWindow <= 0) {
		return errors.New("rate limit habilitado exige RATE_LIMIT_REQS e RATE_LIMIT_WINDOW positivos")
	}
	return nil
}

// DSN monta a string de conexão no formato chave=valor aceito pelo pgx.
func (d DatabaseConfig) DSN(user, password string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, user, password, d.Name, d.Port, d.SSLMode)
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
