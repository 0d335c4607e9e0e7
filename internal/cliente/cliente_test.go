package cliente

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/desempenho/api-motoristas/internal/metrics"
	"github.com/desempenho/api-motoristas/internal/models"
)

func escrever(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func lista(w http.ResponseWriter, data any) {
	escrever(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func falha(w http.ResponseWriter, status int, msg string) {
	escrever(w, status, map[string]any{"success": false, "error": msg})
}

func data(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func pontos(v float64) *float64 { return &v }

// apiFalsa serve as rotas do administrador ADM12345 com dados fixos.
type apiFalsa struct {
	mu         sync.Mutex
	movs       map[string][]models.Movimento
	eventos    []models.Evento
	bloquear   map[string]chan struct{}
	chegou     chan string
	auth       []string
	periodos   []string
	falharMovs map[string]int
}

func novaAPI() *apiFalsa {
	return &apiFalsa{
		movs: map[string][]models.Movimento{
			"11111111": {
				{Digitos: "11111111", Nome: "Ana", DataMovimento: data("2024-03-02T00:00:00Z"), PontuacaoDiaria: pontos(9)},
				{Digitos: "11111111", Nome: "Ana", DataMovimento: data("2024-02-02T00:00:00Z"), PontuacaoDiaria: pontos(7)},
			},
			"22222222": {
				{Digitos: "22222222", Nome: "Bia", DataMovimento: data("2024-03-05T00:00:00Z"), PontuacaoDiaria: pontos(5)},
			},
		},
		eventos: []models.Evento{
			{Digitos: "11111111", Periodo: "2024-03-01", DscEvento: "Freada", TotalPontosEvento: pontos(-1)},
			{Digitos: "11111111", Periodo: "2024-02-01", DscEvento: "Elogio", TotalPontosEvento: pontos(2)},
			{Digitos: "22222222", Periodo: "2024-03-01", DscEvento: "Curva", TotalPontosEvento: pontos(1)},
		},
		bloquear:   map[string]chan struct{}{},
		chegou:     make(chan string, 8),
		falharMovs: map[string]int{},
	}
}

func (a *apiFalsa) servidor(t *testing.T) *httptest.Server {
	r := mux.NewRouter()
	r.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		lista(w, map[string]string{"codigo_empresa": "RX", "digitos": "ADM12345", "token": "tok"})
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/operadores/{adm}", func(w http.ResponseWriter, r *http.Request) {
		a.registrarAuth(r)
		lista(w, []models.Operador{{Digitos: "11111111", Nome: "Ana"}})
	})
	r.HandleFunc("/api/admin/movimentos/{adm}/operador/{op}", func(w http.ResponseWriter, r *http.Request) {
		a.registrarAuth(r)
		op := mux.Vars(r)["op"]
		a.chegou <- op
		a.mu.Lock()
		bloqueio, status := a.bloquear[op], a.falharMovs[op]
		a.mu.Unlock()
		if bloqueio != nil {
			select {
			case <-bloqueio:
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			falha(w, status, "Erro interno do servidor")
			return
		}
		movs, ok := a.movs[op]
		if !ok {
			falha(w, http.StatusNotFound, "Nenhum movimento encontrado para este operador")
			return
		}
		lista(w, movs)
	})
	r.HandleFunc("/api/admin/eventos/{adm}", func(w http.ResponseWriter, r *http.Request) {
		a.registrarAuth(r)
		periodo := r.URL.Query().Get("periodo")
		a.mu.Lock()
		a.periodos = append(a.periodos, periodo)
		a.mu.Unlock()
		var out []models.Evento
		for _, e := range a.eventos {
			if periodo == "" || strings.HasPrefix(e.Periodo, periodo) {
				out = append(out, e)
			}
		}
		if len(out) == 0 {
			falha(w, http.StatusNotFound, "Nenhum evento encontrado")
			return
		}
		lista(w, out)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func (a *apiFalsa) registrarAuth(r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.auth = append(a.auth, r.Header.Get("Authorization"))
}

func TestCliente_LoginEnviaToken(t *testing.T) {
	api := novaAPI()
	c := Novo(api.servidor(t).URL+"/", nil)

	s, err := c.LoginAdmin(context.Background(), "ADM12345")
	if err != nil {
		t.Fatal(err)
	}
	if s.CodigoEmpresa != "RX" || s.Token != "tok" {
		t.Errorf("sessão = %+v", s)
	}
	ops, err := c.Operadores(context.Background(), "ADM12345")
	if err != nil || len(ops) != 1 {
		t.Fatalf("operadores = %+v, %v", ops, err)
	}
	if api.auth[0] != "Bearer tok" {
		t.Errorf("Authorization = %q", api.auth[0])
	}
}

func TestCliente_Erros(t *testing.T) {
	api := novaAPI()
	c := Novo(api.servidor(t).URL, nil)

	_, err := c.Movimentos(context.Background(), "ADM12345", "99999999")
	var e *ErroAPI
	if !errors.As(err, &e) || e.Status != http.StatusNotFound || !strings.Contains(e.Mensagem, "Nenhum movimento") {
		t.Errorf("err = %v", err)
	}
	if !NaoEncontrado(err) {
		t.Error("NaoEncontrado deveria reconhecer o 404")
	}

	evs, err := c.Eventos(context.Background(), "ADM12345", "2020-01")
	if err != nil || evs == nil || len(evs) != 0 {
		t.Errorf("eventos sem resultado = %v, %v", evs, err)
	}
}

func TestDashboard_SelecionarEMudarPeriodo(t *testing.T) {
	api := novaAPI()
	d := NovoDashboard(Novo(api.servidor(t).URL, nil), "ADM12345")
	defer d.Encerrar()

	p, err := d.SelecionarOperador(context.Background(), "11111111")
	if err != nil {
		t.Fatal(err)
	}
	if p.PeriodoSelecionado != "2024-03" || len(p.Movimentos) != 1 || len(p.Eventos) != 1 || p.Eventos[0].DscEvento != "Freada" {
		t.Errorf("painel = %+v", p)
	}

	p, err = d.MudarPeriodo(context.Background(), "2024-02")
	if err != nil {
		t.Fatal(err)
	}
	if p.PeriodoSelecionado != "2024-02" || len(p.Movimentos) != 1 || len(p.Eventos) != 1 || p.Eventos[0].DscEvento != "Elogio" {
		t.Errorf("painel em 2024-02 = %+v", p)
	}
	if last := api.periodos[len(api.periodos)-1]; last != "2024-02" {
		t.Errorf("período pedido = %q", last)
	}
}

func TestDashboard_MudarPeriodoSemOperador(t *testing.T) {
	d := NovoDashboard(Novo("http://127.0.0.1:1", nil), "ADM12345")
	if _, err := d.MudarPeriodo(context.Background(), "2024-03"); !errors.Is(err, ErrSemOperador) {
		t.Errorf("err = %v", err)
	}
}

func TestDashboard_FalhaMantemEstado(t *testing.T) {
	api := novaAPI()
	api.falharMovs["22222222"] = http.StatusInternalServerError
	d := NovoDashboard(Novo(api.servidor(t).URL, nil), "ADM12345")

	antes, err := d.SelecionarOperador(context.Background(), "11111111")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.SelecionarOperador(context.Background(), "22222222"); err == nil {
		t.Fatal("esperava erro")
	}
	if d.Operador() != "11111111" || d.Painel().PeriodoSelecionado != antes.PeriodoSelecionado || len(d.Painel().Movimentos) != len(antes.Movimentos) {
		t.Errorf("estado mudou após falha: %q %+v", d.Operador(), d.Painel())
	}
}

func TestDashboard_DescartaRespostaAntiga(t *testing.T) {
	api := novaAPI()
	liberar := make(chan struct{})
	api.bloquear["11111111"] = liberar
	defer close(liberar)
	d := NovoDashboard(Novo(api.servidor(t).URL, nil), "ADM12345")

	descartadasAntes := testutil.ToFloat64(metrics.RespostasObsoletas)

	primeira := make(chan error, 1)
	go func() {
		_, err := d.SelecionarOperador(context.Background(), "11111111")
		primeira <- err
	}()
	if op := <-api.chegou; op != "11111111" {
		t.Fatalf("primeira busca = %q", op)
	}

	p, err := d.SelecionarOperador(context.Background(), "22222222")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Movimentos) != 1 || p.Movimentos[0].Nome != "Bia" {
		t.Errorf("painel = %+v", p)
	}

	select {
	case err := <-primeira:
		if !errors.Is(err, ErrRespostaObsoleta) {
			t.Errorf("primeira seleção = %v, want ErrRespostaObsoleta", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("primeira seleção não terminou")
	}

	if d.Operador() != "22222222" || d.Painel().Movimentos[0].Nome != "Bia" {
		t.Errorf("estado final = %q %+v", d.Operador(), d.Painel())
	}
	if got := testutil.ToFloat64(metrics.RespostasObsoletas) - descartadasAntes; got != 1 {
		t.Errorf("descartadas = %v, want 1", got)
	}
}
