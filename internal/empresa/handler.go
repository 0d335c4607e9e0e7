// Package empresa consulta empresas_admin pelo código de 8 caracteres ou
// pelo código curto de 2.
package empresa

import (
	"errors"
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

// GET /api/empresas/{digitos}
func (h *Handler) BuscarPorDigitos(w http.ResponseWriter, r *http.Request) {
	digitos := mux.Vars(r)["digitos"]
	if err := validacao.Caracteres("digitos", digitos, 8); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	e, err := h.Repo.BuscarPorDigitos(r.Context(), digitos)
	h.responder(w, r, e, err)
}

// GET /api/empresas/codigo/{codigo}
func (h *Handler) BuscarPorCodigo(w http.ResponseWriter, r *http.Request) {
	codigo := mux.Vars(r)["codigo"]
	if err := validacao.CodigoEmpresa("codigo", codigo); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	e, err := h.Repo.BuscarPorCodigo(r.Context(), codigo)
	h.responder(w, r, e, err)
}

func (h *Handler) responder(w http.ResponseWriter, r *http.Request, e any, err error) {
	if errors.Is(err, ErrNaoEncontrada) {
		resposta.NaoEncontrado(w, "Empresa não encontrada")
		return
	}
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	resposta.Item(w, e)
}
