// Package colunas guarda a configuração de colunas das telas por empresa.
package colunas

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/models"
	"github.com/desempenho/api-motoristas/internal/resposta"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

type salvarRequest struct {
	Empresa string `json:"empresa" validate:"required"`
	Tela    string `json:"tela" validate:"required"`
	Coluna  string `json:"coluna" validate:"required"`
	Visivel *bool  `json:"visivel"`
	Largura int    `json:"largura" validate:"gte=0"`
	Ordem   int    `json:"ordem" validate:"gte=0"`
}

// Coluna sem "visivel" no corpo fica visível.
func (req salvarRequest) modelo() *models.ConfigColuna {
	visivel := true
	if req.Visivel != nil {
		visivel = *req.Visivel
	}
	return &models.ConfigColuna{
		Empresa: req.Empresa,
		Tela:    req.Tela,
		Coluna:  req.Coluna,
		Visivel: visivel,
		Largura: req.Largura,
		Ordem:   req.Ordem,
	}
}

type Handler struct {
	Repo Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// POST /api/config-colunas
func (h *Handler) Salvar(w http.ResponseWriter, r *http.Request) {
	var req salvarRequest
	if err := resposta.Decodificar(r, &req); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if err := validacao.Struct(req); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}

	c := req.modelo()
	if err := h.Repo.Salvar(r.Context(), c); err != nil {
		resposta.Erro(w, r, err, "Erro ao salvar configuração")
		return
	}
	resposta.JSON(w, http.StatusOK, c)
}

// GET /api/config-colunas/{empresa}/{tela}
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cs, err := h.Repo.Listar(r.Context(), vars["empresa"], vars["tela"])
	if err != nil {
		resposta.Erro(w, r, err, "Erro ao buscar colunas")
		return
	}
	resposta.Array(w, cs)
}

// GET /api/config-colunas/{empresa}/{tela}/{coluna}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c, err := h.Repo.Buscar(r.Context(), vars["empresa"], vars["tela"], vars["coluna"])
	if errors.Is(err, ErrNaoEncontrada) {
		resposta.NaoEncontrado(w, "Configuração não encontrada")
		return
	}
	if err != nil {
		resposta.Erro(w, r, err, "Erro ao buscar coluna")
		return
	}
	resposta.JSON(w, http.StatusOK, c)
}
