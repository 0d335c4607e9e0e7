// Package painel monta, no servidor, a visão de um operador que o
// administrador acompanha: períodos, movimentos do mês, série mensal e
// eventos ordenados.
package painel

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/desempenho/api-motoristas/internal/admin"
	"github.com/desempenho/api-motoristas/internal/models"
	"github.com/desempenho/api-motoristas/internal/relatorio"
	"github.com/desempenho/api-motoristas/internal/resposta"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

type Handler struct {
	Repo admin.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: admin.NewRepository(db)}
}

// GET /api/admin/painel/{digitosAdmin}/operador/{digitosOperador}?periodo=YYYY-MM
func (h *Handler) Operador(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	adm, op := vars["digitosAdmin"], vars["digitosOperador"]
	if err := validacao.Caracteres("digitosAdmin", adm, 8); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}
	if err := validacao.Caracteres("digitosOperador", op, 8); err != nil {
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

	var (
		movs    []models.Movimento
		eventos []models.Evento
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		movs, err = h.Repo.ListarMovimentosOperador(ctx, adm, op)
		return err
	})
	g.Go(func() error {
		var err error
		eventos, err = h.Repo.ListarEventos(ctx, adm, "")
		return err
	})
	if err := g.Wait(); err != nil {
		resposta.Erro(w, r, err, "")
		return
	}

	if len(movs) == 0 {
		resposta.NaoEncontrado(w, "Nenhum movimento encontrado para este operador")
		return
	}
	resposta.Item(w, relatorio.Montar(movs, relatorio.FiltrarEventos(eventos, op, ""), periodo))
}
