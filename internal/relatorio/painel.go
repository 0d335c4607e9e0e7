package relatorio

import "github.com/desempenho/api-motoristas/internal/models"

// Painel é a visão de um operador num período, pronta para exibição.
type Painel struct {
	Periodos           []string           `json:"periodos"`
	PeriodoSelecionado string             `json:"periodoSelecionado"`
	PeriodoExibicao    string             `json:"periodoExibicao"`
	Movimentos         []models.Movimento `json:"movimentos"`
	SerieMensal        []PontoSerie       `json:"serieMensal"`
	Eventos            []EventoPainel     `json:"eventos"`
}

// Montar aplica o pipeline ao histórico completo do operador. Sem periodo,
// usa o mais recente. Os eventos devem vir já restritos ao operador.
func Montar(movs []models.Movimento, eventos []models.Evento, periodo string) Painel {
	periodos := PeriodosDisponiveis(movs)
	if periodo == "" && len(periodos) > 0 {
		periodo = periodos[0]
	}
	return Painel{
		Periodos:           periodos,
		PeriodoSelecionado: periodo,
		PeriodoExibicao:    FormatarPeriodo(periodo),
		Movimentos:         FiltrarPorPeriodo(movs, periodo),
		SerieMensal:        SerieMensal(movs),
		Eventos:            PrepararEventos(FiltrarEventos(eventos, "", periodo)),
	}
}
