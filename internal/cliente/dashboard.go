package cliente

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/desempenho/api-motoristas/internal/metrics"
	"github.com/desempenho/api-motoristas/internal/models"
	"github.com/desempenho/api-motoristas/internal/relatorio"
)

// ErrRespostaObsoleta indica que outra seleção foi feita enquanto esta
// buscava dados; o resultado foi descartado.
var ErrRespostaObsoleta = errors.New("resposta de uma seleção anterior descartada")

var ErrSemOperador = errors.New("nenhum operador selecionado")

// Dashboard é o painel do administrador. Só a busca mais recente altera o
// estado; falhas deixam o estado anterior intacto.
type Dashboard struct {
	api   *Cliente
	admin string

	geracao relatorio.Geracao

	mu       sync.Mutex
	operador string
	movs     []models.Movimento
	eventos  []models.Evento
	painel   relatorio.Painel
}

func NovoDashboard(api *Cliente, admin string) *Dashboard {
	return &Dashboard{api: api, admin: admin}
}

// SelecionarOperador busca movimentos e eventos do operador e monta o
// painel no período mais recente.
func (d *Dashboard) SelecionarOperador(ctx context.Context, digitos string) (relatorio.Painel, error) {
	ctx, seq := d.geracao.Nova(ctx)

	var (
		movs    []models.Movimento
		eventos []models.Evento
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movs, err = d.api.Movimentos(gctx, d.admin, digitos)
		return err
	})
	g.Go(func() error {
		var err error
		eventos, err = d.api.Eventos(gctx, d.admin, "")
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.geracao.Vigente(seq) {
		metrics.RespostasObsoletas.Inc()
		return relatorio.Painel{}, ErrRespostaObsoleta
	}
	if err != nil {
		return d.painel, err
	}

	d.operador = digitos
	d.movs = movs
	d.eventos = relatorio.FiltrarEventos(eventos, digitos, "")
	d.painel = relatorio.Montar(d.movs, d.eventos, "")
	return d.painel, nil
}

// MudarPeriodo refaz o painel do operador atual em outro período, buscando
// de novo os eventos desse mês.
func (d *Dashboard) MudarPeriodo(ctx context.Context, periodo string) (relatorio.Painel, error) {
	d.mu.Lock()
	operador := d.operador
	d.mu.Unlock()
	if operador == "" {
		return relatorio.Painel{}, ErrSemOperador
	}

	ctx, seq := d.geracao.Nova(ctx)
	eventos, err := d.api.Eventos(ctx, d.admin, periodo)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.geracao.Vigente(seq) {
		metrics.RespostasObsoletas.Inc()
		return relatorio.Painel{}, ErrRespostaObsoleta
	}
	if err != nil {
		return d.painel, err
	}

	d.eventos = relatorio.FiltrarEventos(eventos, operador, "")
	d.painel = relatorio.Montar(d.movs, d.eventos, periodo)
	return d.painel, nil
}

// Painel devolve o último painel aplicado.
func (d *Dashboard) Painel() relatorio.Painel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.painel
}

func (d *Dashboard) Operador() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.operador
}

// Encerrar cancela a busca em andamento.
func (d *Dashboard) Encerrar() {
	d.geracao.Encerrar()
}
