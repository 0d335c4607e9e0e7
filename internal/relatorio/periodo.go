// Package relatorio agrega o histórico de um operador para o painel: lista de
// períodos, filtro por mês, série mensal do gráfico, ordenação de eventos e
// deduplicação de operadores para busca.
package relatorio

import (
	"sort"
	"strconv"
	"time"

	"github.com/desempenho/api-motoristas/internal/models"
)

var nomesMeses = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// PeriodoDaData devolve a chave YYYY-MM da data em UTC. Usar o fuso local
// desloca datas de meia-noite para o mês anterior.
func PeriodoDaData(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01")
}

// PeriodoDoTexto extrai YYYY-MM de "2024-03", "2024-03-01" ou de um
// timestamp RFC 3339. Devolve "" se o prefixo não for um período.
func PeriodoDoTexto(s string) string {
	if len(s) < 7 {
		return ""
	}
	p := s[:7]
	if _, err := time.Parse("2006-01", p); err != nil {
		return ""
	}
	return p
}

// PeriodosDisponiveis lista os períodos distintos, do mais recente ao mais
// antigo. O primeiro é o período padrão do painel.
func PeriodosDisponiveis(movs []models.Movimento) []string {
	vistos := make(map[string]struct{})
	periodos := []string{}
	for _, m := range movs {
		p := PeriodoDaData(m.DataMovimento)
		if p == "" {
			continue
		}
		if _, ok := vistos[p]; ok {
			continue
		}
		vistos[p] = struct{}{}
		periodos = append(periodos, p)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periodos)))
	return periodos
}

// FiltrarPorPeriodo mantém os movimentos do período, do mais novo ao mais
// antigo. A entrada não é alterada.
func FiltrarPorPeriodo(movs []models.Movimento, periodo string) []models.Movimento {
	out := []models.Movimento{}
	for _, m := range movs {
		if PeriodoDaData(m.DataMovimento) == periodo {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DataMovimento.After(out[j].DataMovimento)
	})
	return out
}

// FormatarPeriodo transforma "2024-03" em "Março/2024". Entradas fora do
// formato voltam como vieram.
func FormatarPeriodo(periodo string) string {
	if PeriodoDoTexto(periodo) == "" || len(periodo) != 7 {
		return periodo
	}
	mes, err := strconv.Atoi(periodo[5:7])
	if err != nil || mes < 1 || mes > 12 {
		return periodo
	}
	return nomesMeses[mes-1] + "/" + periodo[:4]
}
