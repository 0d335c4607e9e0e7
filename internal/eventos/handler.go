// Package eventos lista as ocorrências pontuadas de um operador.
package eventos

import (
	"net/http"

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

// GET /api/eventos?digitos=12345678
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	digitos := r.URL.Query().Get("digitos")
	if err := validacao.Obrigatorio("digitos", digitos); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if err := validacao.Digitos("digitos", digitos, 8); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}

	eventos, err := h.Repo.ListarPorDigitos(r.Context(), digitos)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if len(eventos) == 0 {
		resposta.NaoEncontrado(w, "Nenhum evento encontrado para estes dígitos")
		return
	}
	resposta.Lista(w, eventos)
}
