// Package operador atende o login do motorista e o seu histórico de
// movimentos.
package operador

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/auth"
	"github.com/desempenho/api-motoristas/internal/models"
	"github.com/desempenho/api-motoristas/internal/resposta"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

const mensagemErro = "Erro na API"

type loginRequest struct {
	Digitos string `json:"digitos"`
	CPF7    string `json:"cpf7"`
}

type loginResponse struct {
	models.Operador
	Token string `json:"token,omitempty"`
}

type Handler struct {
	Repo    Repository
	Esquema Esquema
	Tokens  *auth.Servico
}

func NewHandler(db *gorm.DB, esquema Esquema, tokens *auth.Servico) *Handler {
	return &Handler{
		Repo:    NewRepository(db, esquema),
		Esquema: esquema,
		Tokens:  tokens,
	}
}

func (h *Handler) identificador(req loginRequest) string {
	if h.Esquema.CampoLogin == EsquemaCPF7.CampoLogin {
		return req.CPF7
	}
	return req.Digitos
}

// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := resposta.Decodificar(r, &req); err != nil {
		resposta.Erro(w, r, err, mensagemErro)
		return
	}
	id := h.identificador(req)
	if err := validacao.Digitos(h.Esquema.CampoLogin, id, h.Esquema.Tamanho); err != nil {
		resposta.Erro(w, r, err, mensagemErro)
		return
	}

	op, err := h.Repo.BuscarPorIdentificador(r.Context(), id)
	if errors.Is(err, ErrNaoEncontrado) {
		resposta.NaoEncontrado(w, "Motorista não encontrado")
		return
	}
	if err != nil {
		resposta.Erro(w, r, err, mensagemErro)
		return
	}

	tok, err := h.Tokens.Emitir(id, auth.PerfilOperador)
	if err != nil {
		resposta.Erro(w, r, err, mensagemErro)
		return
	}
	resposta.JSON(w, http.StatusOK, loginResponse{Operador: *op, Token: tok})
}

// GET /api/movimentos/{digitos}
// Lista vazia responde 200 com [], ao contrário das demais rotas.
func (h *Handler) Movimentos(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["digitos"]
	if err := validacao.Digitos(h.Esquema.CampoLogin, id, h.Esquema.Tamanho); err != nil {
		resposta.Erro(w, r, err, mensagemErro)
		return
	}
	movs, err := h.Repo.ListarMovimentos(r.Context(), id)
	if err != nil {
		resposta.Erro(w, r, err, mensagemErro)
		return
	}
	resposta.Array(w, movs)
}
