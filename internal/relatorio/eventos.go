package relatorio

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/desempenho/api-motoristas/internal/models"
)

// EventoPainel é o evento com os campos derivados que o painel exibe.
type EventoPainel struct {
	models.Evento
	TipoEvento         string   `json:"tipo_evento"`
	Descricao          string   `json:"descricao"`
	TotalOcorrencias   *float64 `json:"total_ocorrencias"`
	TotalPontos        float64  `json:"total_pontos"`
	TemPontosPositivos bool     `json:"temPontosPositivos"`
}

// PrepararEventos deriva os campos de exibição e ordena: eventos com pontos
// estritamente positivos primeiro, depois os demais; dentro de cada grupo,
// ordem alfabética do tipo (collation pt-BR).
func PrepararEventos(eventos []models.Evento) []EventoPainel {
	out := make([]EventoPainel, 0, len(eventos))
	for _, e := range eventos {
		tipo := e.DscEvento
		if tipo == "" {
			tipo = "Evento"
		}
		out = append(out, EventoPainel{
			Evento:             e,
			TipoEvento:         tipo,
			Descricao:          e.DscEvento,
			TotalOcorrencias:   e.Total,
			TotalPontos:        e.Pontos(),
			TemPontosPositivos: e.Pontos() > 0,
		})
	}
	OrdenarEventos(out)
	return out
}

// OrdenarEventos ordena no lugar. Empates mantêm a ordem de entrada.
func OrdenarEventos(eventos []EventoPainel) {
	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(eventos, func(i, j int) bool {
		a, b := eventos[i], eventos[j]
		if a.TemPontosPositivos != b.TemPontosPositivos {
			return a.TemPontosPositivos
		}
		return col.CompareString(a.TipoEvento, b.TipoEvento) < 0
	})
}

// FiltrarEventos mantém os eventos do operador (quando digitos não é vazio)
// e do período (quando periodo não é vazio).
func FiltrarEventos(eventos []models.Evento, digitos, periodo string) []models.Evento {
	out := []models.Evento{}
	for _, e := range eventos {
		if digitos != "" && e.Digitos != digitos {
			continue
		}
		if periodo != "" && PeriodoDoTexto(e.Periodo) != periodo {
			continue
		}
		out = append(out, e)
	}
	return out
}
