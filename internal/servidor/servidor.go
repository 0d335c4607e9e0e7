// Package servidor monta o roteador HTTP da API com todas as rotas e
// middlewares.
package servidor

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/admin"
	"github.com/desempenho/api-motoristas/internal/auth"
	"github.com/desempenho/api-motoristas/internal/colunas"
	"github.com/desempenho/api-motoristas/internal/config"
	"github.com/desempenho/api-motoristas/internal/economia"
	"github.com/desempenho/api-motoristas/internal/empresa"
	"github.com/desempenho/api-motoristas/internal/eventos"
	"github.com/desempenho/api-motoristas/internal/middleware"
	"github.com/desempenho/api-motoristas/internal/operador"
	"github.com/desempenho/api-motoristas/internal/painel"
	"github.com/desempenho/api-motoristas/internal/ranking"
	"github.com/desempenho/api-motoristas/internal/resposta"
	"github.com/desempenho/api-motoristas/internal/utils/db"
)

// Novo devolve o handler raiz: CORS e limite por IP por fora, depois
// request ID, recuperação de pânico e métricas.
func Novo(database *gorm.DB, cfg *config.Config, tokens *auth.Servico) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.Observar)

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API está rodando!"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", saude(database)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	registrarOperador(r, database, cfg, tokens)
	registrarAdmin(r, database, tokens)

	empresaHandler := empresa.NewHandler(database)
	r.HandleFunc("/api/empresas/codigo/{codigo}", empresaHandler.BuscarPorCodigo).Methods(http.MethodGet)
	r.HandleFunc("/api/empresas/{digitos}", empresaHandler.BuscarPorDigitos).Methods(http.MethodGet)

	economiaHandler := economia.NewHandler(database)
	r.HandleFunc("/api/economia/empresa/{empresa}", economiaHandler.Registros).Methods(http.MethodGet)
	r.HandleFunc("/api/economia/analise-adaptativa/{empresa}", economiaHandler.AnaliseAdaptativa).Methods(http.MethodGet)
	r.HandleFunc("/api/economia/unidades-por-tipo/{empresa}", economiaHandler.UnidadesPorTipo).Methods(http.MethodGet)

	colunasHandler := colunas.NewHandler(database)
	r.HandleFunc("/api/config-colunas", colunasHandler.Salvar).Methods(http.MethodPost)
	r.HandleFunc("/api/config-colunas/{empresa}/{tela}", colunasHandler.Listar).Methods(http.MethodGet)
	r.HandleFunc("/api/config-colunas/{empresa}/{tela}/{coluna}", colunasHandler.Buscar).Methods(http.MethodGet)

	rankingHandler := ranking.NewHandler(database)
	r.HandleFunc("/api/mestre/{empresa}/{periodo}", rankingHandler.Mestre).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resposta.NaoEncontrado(w, "Rota não encontrada")
	})

	var h http.Handler = r
	if !cfg.Security.RateLimitDisabled {
		h = httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow)(h)
	}
	return cors.New(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler(h)
}

// proteger aplica ExigirToken a uma rota só. Com tokens desabilitados o
// handler volta intacto.
func proteger(tokens *auth.Servico, perfil, parametro string, h http.HandlerFunc) http.Handler {
	return tokens.ExigirToken(perfil, parametro)(h)
}

func registrarOperador(r *mux.Router, database *gorm.DB, cfg *config.Config, tokens *auth.Servico) {
	esquema := operador.EsquemaPorNome(cfg.API.EsquemaOperador)
	h := operador.NewHandler(database, esquema, tokens)
	r.HandleFunc("/api/login", h.Login).Methods(http.MethodPost)
	r.Handle("/api/movimentos/{digitos}", proteger(tokens, auth.PerfilOperador, "digitos", h.Movimentos)).Methods(http.MethodGet)

	ev := eventos.NewHandler(database)
	r.Handle("/api/eventos", proteger(tokens, auth.PerfilOperador, "digitos", ev.Listar)).Methods(http.MethodGet)
}

func registrarAdmin(r *mux.Router, database *gorm.DB, tokens *auth.Servico) {
	h := admin.NewHandler(database, tokens)
	p := painel.NewHandler(database)
	r.HandleFunc("/api/admin/login", h.Login).Methods(http.MethodPost)

	rotas := []struct {
		caminho string
		handler http.HandlerFunc
	}{
		{"/api/admin/movimentos/{digitosAdmin}", h.Movimentos},
		{"/api/admin/movimentos/{digitosAdmin}/operador/{digitosOperador}", h.MovimentosOperador},
		{"/api/admin/eventos/{digitosAdmin}", h.Eventos},
		{"/api/admin/operadores/{digitosAdmin}", h.Operadores},
		{"/api/admin/operadores/{digitosAdmin}/busca", h.BuscarOperadores},
		{"/api/admin/painel/{digitosAdmin}/operador/{digitosOperador}", p.Operador},
	}
	for _, rota := range rotas {
		r.Handle(rota.caminho, proteger(tokens, auth.PerfilAdmin, "digitosAdmin", rota.handler)).Methods(http.MethodGet)
	}
}

func saude(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, database); err != nil {
			resposta.Falha(w, http.StatusServiceUnavailable, "Banco de dados indisponível")
			return
		}
		resposta.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
