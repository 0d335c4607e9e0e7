package relatorio

import (
	"math"
	"sort"

	"github.com/desempenho/api-motoristas/internal/models"
)

// MesesNaSerie é quantos meses o gráfico mostra.
const MesesNaSerie = 6

type PontoSerie struct {
	Periodo string  `json:"periodo"`
	Rotulo  string  `json:"rotulo"` // MM/AA
	Media   float64 `json:"media"`
}

// SerieMensal calcula a média da pontuação diária por mês, para os últimos
// MesesNaSerie meses presentes, em ordem cronológica. Pontuação nula ou
// inválida soma zero mas conta no divisor. Meses sem movimento não aparecem.
// Devolve nil quando todas as médias são zero: não há gráfico a desenhar.
func SerieMensal(movs []models.Movimento) []PontoSerie {
	type acumulado struct {
		soma  float64
		total int
	}
	grupos := make(map[string]*acumulado)
	for _, m := range movs {
		p := PeriodoDaData(m.DataMovimento)
		if p == "" {
			continue
		}
		g, ok := grupos[p]
		if !ok {
			g = &acumulado{}
			grupos[p] = g
		}
		g.total++
		if v := m.PontuacaoDiaria; v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
			g.soma += *v
		}
	}

	periodos := make([]string, 0, len(grupos))
	for p := range grupos {
		periodos = append(periodos, p)
	}
	sort.Strings(periodos)
	if len(periodos) > MesesNaSerie {
		periodos = periodos[len(periodos)-MesesNaSerie:]
	}

	serie := make([]PontoSerie, 0, len(periodos))
	temDados := false
	for _, p := range periodos {
		g := grupos[p]
		media := arredondar2(g.soma / float64(g.total))
		if media != 0 {
			temDados = true
		}
		serie = append(serie, PontoSerie{Periodo: p, Rotulo: p[5:7] + "/" + p[2:4], Media: media})
	}
	if !temDados {
		return nil
	}
	return serie
}

func arredondar2(v float64) float64 {
	return math.Round(v*100) / 100
}
