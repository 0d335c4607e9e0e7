package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/api-motoristas/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "postgres",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			SlowQuery:       500 * time.Millisecond,
		},
		API: APIConfig{
			EsquemaOperador: EsquemaDigitos,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			TokenHabilitado:   false,
			TokenValidade:     24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load aplica padrões, arquivo (CONFIG_PATH ou DefaultConfigPaths) e ambiente,
// e devolve a configuração já validada.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("falha ao carregar padrões: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("falha ao carregar arquivo de configuração %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("falha ao carregar variáveis de ambiente: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("falha ao decodificar configuração: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converte listas vindas do ambiente ("a, b") em []string.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var itens []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				itens = append(itens, p)
			}
		}
		if err := k.Set(path, itens); err != nil {
			return fmt.Errorf("falha ao definir %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"port":              "server.port",
	"http_host":         "server.host",
	"read_timeout":      "server.read_timeout",
	"write_timeout":     "server.write_timeout",
	"shutdown_timeout":  "server.shutdown_timeout",
	"pg_host":           "database.host",
	"pg_port":           "database.port",
	"pg_database":       "database.name",
	"pg_user":           "database.user",
	"pg_password":       "database.password",
	"pg_sslmode":        "database.sslmode",
	"db_secret_id":      "database.secret_id",
	"db_max_open_conns": "database.max_open_conns",
	"db_max_idle_conns": "database.max_idle_conns",
	"db_conn_lifetime":  "database.conn_max_lifetime",
	"db_slow_query":     "database.slow_query",

	"esquema_operador": "api.esquema_operador",

	"cors_origins":        "security.cors_origins",
	"rate_limit_reqs":     "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"rate_limit_disabled": "security.rate_limit_disabled",
	"token_habilitado":    "security.token_habilitado",
	"jwt_secret":          "security.jwt_secret",
	"token_validade":      "security.token_validade",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc só aceita as variáveis mapeadas; o resto do ambiente é ignorado.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
