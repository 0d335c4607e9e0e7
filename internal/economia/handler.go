// Package economia expõe a economia de combustível por empresa e a análise
// adaptativa da estrutura de unidades (GERAL, MATRIZ e operacionais).
package economia

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/models"
	"github.com/desempenho/api-motoristas/internal/resposta"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

const (
	periodoTodos  = "TODOS"
	textoSugestao = "Esta unidade tem a maior economia e pode ser considerada a principal"
)

type analiseResponse struct {
	Success          bool                      `json:"success"`
	Data             []models.RegistroEconomia `json:"data"`
	EstruturaEmpresa Estrutura                 `json:"estruturaEmpresa"`
	DadosAgrupados   Agrupados                 `json:"dadosAgrupados"`
	Metricas         Metricas                  `json:"metricas"`
	Empresa          string                    `json:"empresa"`
}

type unidadesResponse struct {
	Success                  bool                  `json:"success"`
	Unidades                 []UnidadeClassificada `json:"unidades"`
	TotalUnidades            int                   `json:"totalUnidades"`
	UnidadePrincipalSugerida *SugestaoPrincipal    `json:"unidadePrincipalSugerida"`
	Empresa                  string                `json:"empresa"`
}

type Handler struct {
	Repo Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

func empresaDaRota(r *http.Request) (string, error) {
	empresa := mux.Vars(r)["empresa"]
	return empresa, validacao.CodigoEmpresa("empresa", empresa)
}

// GET /api/economia/empresa/{empresa}
func (h *Handler) Registros(w http.ResponseWriter, r *http.Request) {
	empresa, err := empresaDaRota(r)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	regs, err := h.Repo.ListarRegistros(r.Context(), empresa)
	if err != nil {
		resposta.Erro(w, r, err, "Erro na API")
		return
	}
	resposta.Array(w, regs)
}

// GET /api/economia/analise-adaptativa/{empresa}?periodo=YYYY-MM|TODOS
func (h *Handler) AnaliseAdaptativa(w http.ResponseWriter, r *http.Request) {
	const msgErro = "Erro na análise adaptativa"

	empresa, err := empresaDaRota(r)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	periodo := r.URL.Query().Get("periodo")
	if periodo == periodoTodos {
		periodo = ""
	}
	if periodo != "" {
		if err := validacao.Periodo(periodo); err != nil {
			resposta.Erro(w, r, err, "")
			return
		}
	}

	unidades, err := h.Repo.ListarUnidades(r.Context(), empresa)
	if err != nil {
		resposta.Erro(w, r, err, msgErro)
		return
	}
	regs, err := h.Repo.ListarDashboard(r.Context(), empresa, periodo)
	if err != nil {
		resposta.Erro(w, r, err, msgErro)
		return
	}
	OrdenarRegistros(regs)

	a := Analisar(empresa, regs, unidades)
	resposta.JSON(w, http.StatusOK, analiseResponse{
		Success:          true,
		Data:             regs,
		EstruturaEmpresa: a.Estrutura,
		DadosAgrupados:   a.Agrupados,
		Metricas:         a.Metricas,
		Empresa:          empresa,
	})
}

// GET /api/economia/unidades-por-tipo/{empresa}
func (h *Handler) UnidadesPorTipo(w http.ResponseWriter, r *http.Request) {
	const msgErro = "Erro ao buscar unidades por tipo"

	empresa, err := empresaDaRota(r)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	unidades, err := h.Repo.ListarUnidades(r.Context(), empresa)
	if err != nil {
		resposta.Erro(w, r, err, msgErro)
		return
	}

	var sugestao *SugestaoPrincipal
	if !contem(unidades, models.UnidadeMatriz) {
		sugestao, err = h.Repo.MaiorEconomia(r.Context(), empresa)
		if err != nil {
			resposta.Erro(w, r, err, msgErro)
			return
		}
		if sugestao != nil {
			sugestao.Sugestao = textoSugestao
		}
	}

	resposta.JSON(w, http.StatusOK, unidadesResponse{
		Success:                  true,
		Unidades:                 ClassificarUnidades(unidades),
		TotalUnidades:            len(unidades),
		UnidadePrincipalSugerida: sugestao,
		Empresa:                  empresa,
	})
}
