package relatorio

import (
	"context"
	"sync"
)

// Geracao numera as seleções do painel. Cada Nova cancela a busca anterior;
// uma resposta só pode ser aplicada se o seu número ainda for o vigente.
type Geracao struct {
	mu       sync.Mutex
	atual    uint64
	cancelar context.CancelFunc
}

// Nova emite o próximo número e um contexto que é cancelado na próxima
// chamada a Nova ou Encerrar.
func (g *Geracao) Nova(ctx context.Context) (context.Context, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancelar != nil {
		g.cancelar()
	}
	ctx, cancel := context.WithCancel(ctx)
	g.cancelar = cancel
	g.atual++
	return ctx, g.atual
}

// Vigente informa se seq é o último número emitido.
func (g *Geracao) Vigente(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return seq == g.atual
}

func (g *Geracao) Encerrar() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancelar != nil {
		g.cancelar()
		g.cancelar = nil
	}
}
