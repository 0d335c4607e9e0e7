package operador

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/desempenho/api-motoristas/internal/auth"
	"github.com/desempenho/api-motoristas/internal/config"
	"github.com/desempenho/api-motoristas/internal/models"
)

type fakeRepo struct {
	operador  *models.Operador
	movs      []models.Movimento
	err       error
	consultou string
}

func (f *fakeRepo) BuscarPorIdentificador(_ context.Context, id string) (*models.Operador, error) {
	f.consultou = id
	if f.err != nil {
		return nil, f.err
	}
	if f.operador == nil {
		return nil, ErrNaoEncontrado
	}
	return f.operador, nil
}

func (f *fakeRepo) ListarMovimentos(_ context.Context, id string) ([]models.Movimento, error) {
	f.consultou = id
	return f.movs, f.err
}

func router(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/movimentos/{digitos}", h.Movimentos).Methods(http.MethodGet)
	return r
}

func TestLogin(t *testing.T) {
	ana := &models.Operador{Nome: "Ana", Digitos: "12345678", ChaveFun: "10"}
	tests := []struct {
		name       string
		esquema    Esquema
		repo       *fakeRepo
		corpo      string
		wantStatus int
		wantCorpo  string
	}{
		{"encontrado", EsquemaDigitos, &fakeRepo{operador: ana}, `{"digitos":"12345678"}`, http.StatusOK, `"nome":"Ana"`},
		{"não encontrado", EsquemaDigitos, &fakeRepo{}, `{"digitos":"12345678"}`, http.StatusNotFound, "Motorista não encontrado"},
		{"tamanho errado", EsquemaDigitos, &fakeRepo{}, `{"digitos":"1234"}`, http.StatusBadRequest, "8 dígitos"},
		{"corpo inválido", EsquemaDigitos, &fakeRepo{}, `{`, http.StatusBadRequest, "Payload inválido"},
		{"erro do banco", EsquemaDigitos, &fakeRepo{err: errors.New("conn reset")}, `{"digitos":"12345678"}`, http.StatusInternalServerError, "Erro na API"},
		{"esquema cpf7", EsquemaCPF7, &fakeRepo{operador: ana}, `{"cpf7":"1234567"}`, http.StatusOK, `"nome":"Ana"`},
		{"esquema cpf7 com 8", EsquemaCPF7, &fakeRepo{operador: ana}, `{"cpf7":"12345678"}`, http.StatusBadRequest, "7 dígitos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{Repo: tt.repo, Esquema: tt.esquema}
			rec := httptest.NewRecorder()
			router(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.corpo)))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantCorpo) {
				t.Errorf("corpo = %s, want conter %q", rec.Body.String(), tt.wantCorpo)
			}
			if strings.Contains(rec.Body.String(), "conn reset") {
				t.Error("erro interno vazou")
			}
		})
	}
}

func TestLogin_ComToken(t *testing.T) {
	tokens := auth.NovoServico(config.SecurityConfig{
		TokenHabilitado: true,
		JWTSecret:       strings.Repeat("k", 32),
		TokenValidade:   time.Hour,
	})
	h := &Handler{Repo: &fakeRepo{operador: &models.Operador{Nome: "Ana"}}, Esquema: EsquemaDigitos, Tokens: tokens}
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"digitos":"12345678"}`)))

	var body struct {
		Nome  string `json:"nome"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	c, err := tokens.Validar(body.Token)
	if err != nil {
		t.Fatalf("token emitido inválido: %v", err)
	}
	if c.Subject != "12345678" || c.Perfil != auth.PerfilOperador {
		t.Errorf("claims = %+v", c)
	}
}

func TestMovimentos_VazioRespondeArray(t *testing.T) {
	repo := &fakeRepo{}
	rec := httptest.NewRecorder()
	router(&Handler{Repo: repo, Esquema: EsquemaDigitos}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movimentos/12345678", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("corpo = %q, want []", got)
	}
	if repo.consultou != "12345678" {
		t.Errorf("consultou %q", repo.consultou)
	}
}

func TestMovimentos_Validacao(t *testing.T) {
	rec := httptest.NewRecorder()
	router(&Handler{Repo: &fakeRepo{}, Esquema: EsquemaDigitos}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movimentos/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEsquemaPorNome(t *testing.T) {
	if EsquemaPorNome("cpf7") != EsquemaCPF7 || EsquemaPorNome("digitos") != EsquemaDigitos || EsquemaPorNome("") != EsquemaDigitos {
		t.Error("EsquemaPorNome mapeou errado")
	}
}
