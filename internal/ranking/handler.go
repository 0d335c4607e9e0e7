// Package ranking serve a tabela mestre de ranking por empresa e período.
package ranking

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/resposta"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

type Handler struct {
	Repo Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// GET /api/mestre/{empresa}/{periodo}
func (h *Handler) Mestre(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	empresa, periodo := vars["empresa"], vars["periodo"]
	if err := validacao.CodigoEmpresa("empresa", empresa); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if err := validacao.Periodo(periodo); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}

	linhas, err := h.Repo.ListarMestre(r.Context(), empresa, periodo)
	if err != nil {
		resposta.Erro(w, r, err, "Erro na API")
		return
	}
	resposta.Array(w, linhas)
}
