package servidor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/auth"
	"github.com/desempenho/api-motoristas/internal/config"
)

// bancoInacessivel abre um pool que nunca conecta; as rotas testadas aqui
// respondem antes de chegar ao banco.
func bancoInacessivel(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable",
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatal(err)
	}
	return database
}

func configTeste() *config.Config {
	return &config.Config{
		API: config.APIConfig{EsquemaOperador: config.EsquemaDigitos},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
			JWTSecret:         strings.Repeat("s", 32),
			TokenValidade:     time.Hour,
		},
	}
}

func chamar(h http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRotasSemBanco(t *testing.T) {
	cfg := configTeste()
	h := Novo(bancoInacessivel(t), cfg, auth.NovoServico(cfg.Security))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"raiz", http.MethodGet, "/", http.StatusOK, "API está rodando!"},
		{"métricas", http.MethodGet, "/metrics", http.StatusOK, "# HELP"},
		{"rota desconhecida", http.MethodGet, "/api/nada", http.StatusNotFound, "Rota não encontrada"},
		{"eventos sem dígitos", http.MethodGet, "/api/eventos", http.StatusBadRequest, "obrigatório"},
		{"movimentos curtos", http.MethodGet, "/api/movimentos/123", http.StatusBadRequest, "dígitos"},
		{"mestre empresa inválida", http.MethodGet, "/api/mestre/RXX/2024-03", http.StatusBadRequest, "empresa"},
		{"economia empresa inválida", http.MethodGet, "/api/economia/empresa/R", http.StatusBadRequest, "empresa"},
		{"empresa por código curto", http.MethodGet, "/api/empresas/codigo/R", http.StatusBadRequest, "codigo"},
		{"painel admin curto", http.MethodGet, "/api/admin/painel/ADM/operador/12345678", http.StatusBadRequest, "digitosAdmin"},
		{"login sem corpo", http.MethodPost, "/api/login", http.StatusBadRequest, "Corpo da requisição vazio"},
		{"config sem corpo", http.MethodPost, "/api/config-colunas", http.StatusBadRequest, "Corpo da requisição vazio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := chamar(h, tt.method, tt.path, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("corpo = %s, want conter %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	cfg := configTeste()
	h := Novo(bancoInacessivel(t), cfg, auth.NovoServico(cfg.Security))

	rec := chamar(h, http.MethodGet, "/", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("resposta sem X-Request-ID")
	}
	rec = chamar(h, http.MethodGet, "/", http.Header{"X-Request-Id": {"abc"}})
	if got := rec.Header().Get("X-Request-ID"); got != "abc" {
		t.Errorf("X-Request-ID = %q, want abc", got)
	}
}

func TestCORS(t *testing.T) {
	cfg := configTeste()
	h := Novo(bancoInacessivel(t), cfg, auth.NovoServico(cfg.Security))

	rec := chamar(h, http.MethodOptions, "/api/login", http.Header{
		"Origin":                        {"http://painel.local"},
		"Access-Control-Request-Method": {http.MethodPost},
	})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestLimitePorIP(t *testing.T) {
	cfg := configTeste()
	cfg.Security.RateLimitDisabled = false
	cfg.Security.RateLimitReqs = 2
	cfg.Security.RateLimitWindow = time.Minute
	h := Novo(bancoInacessivel(t), cfg, auth.NovoServico(cfg.Security))

	for i := 0; i < 2; i++ {
		if rec := chamar(h, http.MethodGet, "/", nil); rec.Code != http.StatusOK {
			t.Fatalf("requisição %d: status = %d", i, rec.Code)
		}
	}
	if rec := chamar(h, http.MethodGet, "/", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("terceira requisição: status = %d, want 429", rec.Code)
	}
}

func TestRotasAdminComToken(t *testing.T) {
	cfg := configTeste()
	cfg.Security.TokenHabilitado = true
	tokens := auth.NovoServico(cfg.Security)
	h := Novo(bancoInacessivel(t), cfg, tokens)

	rec := chamar(h, http.MethodGet, "/api/admin/movimentos/ADM12345", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("sem token: status = %d", rec.Code)
	}

	outro, err := tokens.Emitir("OUTRO123", auth.PerfilAdmin)
	if err != nil {
		t.Fatal(err)
	}
	rec = chamar(h, http.MethodGet, "/api/admin/movimentos/ADM12345", http.Header{"Authorization": {"Bearer " + outro}})
	if rec.Code != http.StatusForbidden {
		t.Errorf("token de outro admin: status = %d", rec.Code)
	}

	op, err := tokens.Emitir("12345678", auth.PerfilOperador)
	if err != nil {
		t.Fatal(err)
	}
	rec = chamar(h, http.MethodGet, "/api/admin/painel/ADM12345/operador/12345678", http.Header{"Authorization": {"Bearer " + op}})
	if rec.Code != http.StatusForbidden {
		t.Errorf("token de operador em rota de admin: status = %d", rec.Code)
	}

	// login continua aberto
	rec = chamar(h, http.MethodPost, "/api/admin/login", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("login: status = %d", rec.Code)
	}
}
