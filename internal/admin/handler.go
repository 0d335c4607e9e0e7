// Package admin atende o administrador da empresa: login pelo código da
// empresa e consultas sobre todos os seus operadores.
package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/auth"
	"github.com/desempenho/api-motoristas/internal/empresa"
	"github.com/desempenho/api-motoristas/internal/relatorio"
	"github.com/desempenho/api-motoristas/internal/resposta"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

const tamanhoDigitos = 8

type loginRequest struct {
	Digitos string `json:"digitos"`
}

type loginData struct {
	CodigoEmpresa string `json:"codigo_empresa"`
	NomeEmpresa   string `json:"nome_empresa"`
	Digitos       string `json:"digitos"`
	Perfil        string `json:"perfil"`
	IsAdmin       bool   `json:"isAdmin"`
	Token         string `json:"token,omitempty"`
}

type Handler struct {
	Repo     Repository
	Empresas empresa.Repository
	Tokens   *auth.Servico
}

func NewHandler(db *gorm.DB, tokens *auth.Servico) *Handler {
	return &Handler{
		Repo:     NewRepository(db),
		Empresas: empresa.NewRepository(db),
		Tokens:   tokens,
	}
}

// POST /api/admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := resposta.Decodificar(r, &req); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if err := validacao.Caracteres("digitos", req.Digitos, tamanhoDigitos); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}

	e, err := h.Empresas.BuscarPorDigitos(r.Context(), req.Digitos)
	if errors.Is(err, empresa.ErrNaoEncontrada) {
		resposta.NaoEncontrado(w, "Administrador não encontrado")
		return
	}
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}

	tok, err := h.Tokens.Emitir(e.Digitos, auth.PerfilAdmin)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	resposta.Item(w, loginData{
		CodigoEmpresa: e.CodigoEmpresa,
		NomeEmpresa:   e.NomeEmpresa,
		Digitos:       e.Digitos,
		Perfil:        auth.PerfilAdmin,
		IsAdmin:       true,
		Token:         tok,
	})
}

// GET /api/admin/movimentos/{digitosAdmin}
func (h *Handler) Movimentos(w http.ResponseWriter, r *http.Request) {
	adm := mux.Vars(r)["digitosAdmin"]
	if err := validacao.Caracteres("digitosAdmin", adm, tamanhoDigitos); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	movs, err := h.Repo.ListarMovimentos(r.Context(), adm)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if len(movs) == 0 {
		resposta.NaoEncontrado(w, "Nenhum movimento encontrado para este administrador")
		return
	}
	resposta.Lista(w, movs)
}

// GET /api/admin/movimentos/{digitosAdmin}/operador/{digitosOperador}
func (h *Handler) MovimentosOperador(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	adm, op := vars["digitosAdmin"], vars["digitosOperador"]
	if err := validarPar(adm, op); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	movs, err := h.Repo.ListarMovimentosOperador(r.Context(), adm, op)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if len(movs) == 0 {
		resposta.NaoEncontrado(w, "Nenhum movimento encontrado para este operador")
		return
	}
	resposta.Lista(w, movs)
}

// GET /api/admin/eventos/{digitosAdmin}?periodo=YYYY-MM
func (h *Handler) Eventos(w http.ResponseWriter, r *http.Request) {
	adm := mux.Vars(r)["digitosAdmin"]
	if err := validacao.Caracteres("digitosAdmin", adm, tamanhoDigitos); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	periodo := r.URL.Query().Get("periodo")
	if periodo != "" {
		if err := validacao.Periodo(periodo); err != nil {
			resposta.Erro(w, r, err, "")
			return
		}
	}

	eventos, err := h.Repo.ListarEventos(r.Context(), adm, periodo)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if len(eventos) == 0 {
		msg := "Nenhum evento encontrado"
		if periodo != "" {
			msg = fmt.Sprintf("Nenhum evento encontrado para o período %s", periodo)
		}
		resposta.NaoEncontrado(w, msg)
		return
	}
	resposta.Lista(w, eventos)
}

// GET /api/admin/operadores/{digitosAdmin}
func (h *Handler) Operadores(w http.ResponseWriter, r *http.Request) {
	adm := mux.Vars(r)["digitosAdmin"]
	if err := validacao.Caracteres("digitosAdmin", adm, tamanhoDigitos); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	ops, err := h.Repo.ListarOperadores(r.Context(), adm)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if len(ops) == 0 {
		resposta.NaoEncontrado(w, "Nenhum operador encontrado")
		return
	}
	resposta.Lista(w, ops)
}

// GET /api/admin/operadores/{digitosAdmin}/busca?termo=
// Um operador por código, filtrado por nome, matrícula ou código.
func (h *Handler) BuscarOperadores(w http.ResponseWriter, r *http.Request) {
	adm := mux.Vars(r)["digitosAdmin"]
	if err := validacao.Caracteres("digitosAdmin", adm, tamanhoDigitos); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	ops, err := h.Repo.ListarOperadores(r.Context(), adm)
	if err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	unicos := relatorio.DeduplicarOperadores(ops)
	resposta.Lista(w, relatorio.BuscarOperadores(unicos, r.URL.Query().Get("termo")))
}

func validarPar(adm, op string) error {
	if err := validacao.Caracteres("digitosAdmin", adm, tamanhoDigitos); err != nil {
		return err
	}
	return validacao.Caracteres("digitosOperador", op, tamanhoDigitos)
}
