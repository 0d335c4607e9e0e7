package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/desempenho/api-motoristas/internal/config"
)

func servico(habilitado bool) *Servico {
	return NovoServico(config.SecurityConfig{
		TokenHabilitado: habilitado,
		JWTSecret:       strings.Repeat("k", 32),
		TokenValidade:   time.Hour,
	})
}

func TestEmitir_Desabilitado(t *testing.T) {
	tok, err := servico(false).Emitir("12345678", PerfilAdmin)
	if err != nil || tok != "" {
		t.Fatalf("Emitir desabilitado = %q, %v", tok, err)
	}
	var nulo *Servico
	if nulo.Habilitado() {
		t.Error("serviço nil não pode estar habilitado")
	}
}

func TestEmitirValidar(t *testing.T) {
	s := servico(true)
	tok, err := s.Emitir("12345678", PerfilAdmin)
	if err != nil || tok == "" {
		t.Fatalf("Emitir = %q, %v", tok, err)
	}
	c, err := s.Validar(tok)
	if err != nil {
		t.Fatalf("Validar = %v", err)
	}
	if c.Subject != "12345678" || c.Perfil != PerfilAdmin {
		t.Errorf("claims = %+v", c)
	}
}

func TestValidar_Recusa(t *testing.T) {
	s := servico(true)
	tok, _ := s.Emitir("12345678", PerfilOperador)

	outro := NovoServico(config.SecurityConfig{TokenHabilitado: true, JWTSecret: strings.Repeat("x", 32), TokenValidade: time.Hour})
	if _, err := outro.Validar(tok); err == nil {
		t.Error("token assinado com outro segredo foi aceito")
	}

	s.agora = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := s.Validar(tok); err == nil {
		t.Error("token expirado foi aceito")
	}
}

func TestExigirToken(t *testing.T) {
	s := servico(true)
	tokAdmin, _ := s.Emitir("ADM00001", PerfilAdmin)
	tokOperador, _ := s.Emitir("ADM00001", PerfilOperador)

	r := mux.NewRouter()
	sub := r.PathPrefix("/api/admin").Subrouter()
	sub.Use(s.ExigirToken(PerfilAdmin, "digitosAdmin"))
	sub.HandleFunc("/movimentos/{digitosAdmin}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsDoContexto(r.Context()); !ok {
			t.Error("claims ausentes no contexto")
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"sem token", "/api/admin/movimentos/ADM00001", "", http.StatusUnauthorized},
		{"token lixo", "/api/admin/movimentos/ADM00001", "Bearer abc", http.StatusUnauthorized},
		{"perfil errado", "/api/admin/movimentos/ADM00001", "Bearer " + tokOperador, http.StatusForbidden},
		{"outro admin", "/api/admin/movimentos/ADM00002", "Bearer " + tokAdmin, http.StatusForbidden},
		{"ok", "/api/admin/movimentos/ADM00001", "Bearer " + tokAdmin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestExigirToken_Desabilitado(t *testing.T) {
	h := servico(false).ExigirToken(PerfilAdmin, "digitosAdmin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, middleware desabilitado deveria deixar passar", rec.Code)
	}
}
