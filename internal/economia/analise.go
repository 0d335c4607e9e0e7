package economia

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/desempenho/api-motoristas/internal/models"
	"github.com/desempenho/api-motoristas/internal/relatorio"
)

// Rótulos e tipos de unidade.
const (
	RotuloTotal       = "Total Empresa"
	RotuloPrincipal   = "Unidade Principal"
	RotuloOperacional = "Unidade Operacional"

	UnidadeTotalCalculado = "TOTAL CALCULADO"
)

type Classificacao struct {
	Rotulo string
	Tipo   string // total, principal ou operacional
	Ordem  int
}

// ClassificarUnidade é o classificador único: GERAL é o total da empresa,
// MATRIZ a unidade principal e o resto é operacional.
func ClassificarUnidade(unidade string) Classificacao {
	switch unidade {
	case models.UnidadeGeral:
		return Classificacao{Rotulo: RotuloTotal, Tipo: "total", Ordem: 1}
	case models.UnidadeMatriz:
		return Classificacao{Rotulo: RotuloPrincipal, Tipo: "principal", Ordem: 2}
	default:
		return Classificacao{Rotulo: RotuloOperacional, Tipo: "operacional", Ordem: 3}
	}
}

// LinhaGeral é uma linha GERAL ou o total sintetizado quando ela não existe.
type LinhaGeral struct {
	models.RegistroEconomia
	IsCalculado bool `json:"isCalculado,omitempty"`
}

type ItemRanking struct {
	Unidade            string  `json:"unidade"`
	Tipo               string  `json:"tipo"`
	TotalValorEconomia float64 `json:"total_valor_economia"`
	TotalKm            float64 `json:"total_km"`
	Registros          int     `json:"registros"`
}

type Estrutura struct {
	TemGeral      bool     `json:"temGeral"`
	TemMatriz     bool     `json:"temMatriz"`
	TotalUnidades int      `json:"totalUnidades"`
	Unidades      []string `json:"unidades"`
}

type Agrupados struct {
	Geral                []LinhaGeral              `json:"geral"`
	Matriz               []models.RegistroEconomia `json:"matriz"`
	UnidadesOperacionais []models.RegistroEconomia `json:"unidadesOperacionais"`
}

type Metricas struct {
	ContribuicaoMatriz   *float64      `json:"contribuicaoMatriz"`
	Ranking              []ItemRanking `json:"ranking"`
	TotalUnidadesRanking int           `json:"totalUnidadesRanking"`
}

type Analise struct {
	Estrutura Estrutura
	Agrupados Agrupados
	Metricas  Metricas
}

// Analisar classifica as linhas de uma empresa (já filtradas por período, se
// for o caso). unidades é a lista de unidades cadastradas, usada só na
// estrutura devolvida.
//
// Sem linha GERAL, o total é sintetizado somando todas as linhas, inclusive
// MATRIZ e operacionais. A contribuição da MATRIZ só existe com GERAL e
// MATRIZ presentes e soma GERAL diferente de zero. O ranking não tem ordem
// garantida entre unidades empatadas.
func Analisar(empresa string, regs []models.RegistroEconomia, unidades []string) Analise {
	var a Analise
	a.Agrupados.Matriz = []models.RegistroEconomia{}
	a.Agrupados.UnidadesOperacionais = []models.RegistroEconomia{}

	var somaKm, somaQtde, somaValor decimal.Decimal
	for _, r := range regs {
		somaKm = somaKm.Add(r.Km)
		somaQtde = somaQtde.Add(r.QtdeEconomia)
		somaValor = somaValor.Add(r.ValorEconomia)

		switch r.Unidade {
		case models.UnidadeGeral:
			a.Estrutura.TemGeral = true
			a.Agrupados.Geral = append(a.Agrupados.Geral, LinhaGeral{RegistroEconomia: r})
		case models.UnidadeMatriz:
			a.Estrutura.TemMatriz = true
			a.Agrupados.Matriz = append(a.Agrupados.Matriz, r)
		default:
			a.Agrupados.UnidadesOperacionais = append(a.Agrupados.UnidadesOperacionais, r)
		}
	}

	if !a.Estrutura.TemGeral {
		a.Agrupados.Geral = []LinhaGeral{{
			RegistroEconomia: models.RegistroEconomia{
				Unidade:       UnidadeTotalCalculado,
				Empresa:       empresa,
				Km:            somaKm,
				QtdeEconomia:  somaQtde,
				ValorEconomia: somaValor,
			},
			IsCalculado: true,
		}}
	}

	if unidades == nil {
		unidades = []string{}
	}
	a.Estrutura.Unidades = unidades
	a.Estrutura.TotalUnidades = len(unidades)

	a.Metricas.ContribuicaoMatriz = contribuicaoMatriz(a)
	a.Metricas.Ranking = Ranking(regs)
	a.Metricas.TotalUnidadesRanking = len(a.Metricas.Ranking)
	return a
}

func contribuicaoMatriz(a Analise) *float64 {
	if !a.Estrutura.TemGeral || !a.Estrutura.TemMatriz {
		return nil
	}
	var geral, matriz decimal.Decimal
	for _, g := range a.Agrupados.Geral {
		geral = geral.Add(g.ValorEconomia)
	}
	for _, m := range a.Agrupados.Matriz {
		matriz = matriz.Add(m.ValorEconomia)
	}
	if geral.IsZero() {
		return nil
	}
	v := matriz.Mul(decimal.NewFromInt(100)).Div(geral).InexactFloat64()
	return &v
}

// Ranking agrupa as linhas que não são GERAL por unidade e ordena pela soma
// do valor economizado, do maior para o menor.
func Ranking(regs []models.RegistroEconomia) []ItemRanking {
	type acumulado struct {
		valor, km decimal.Decimal
		registros int
	}
	grupos := make(map[string]*acumulado)
	var ordem []string
	for _, r := range regs {
		if r.Unidade == models.UnidadeGeral {
			continue
		}
		g, ok := grupos[r.Unidade]
		if !ok {
			g = &acumulado{}
			grupos[r.Unidade] = g
			ordem = append(ordem, r.Unidade)
		}
		g.valor = g.valor.Add(r.ValorEconomia)
		g.km = g.km.Add(r.Km)
		g.registros++
	}

	sort.SliceStable(ordem, func(i, j int) bool {
		return grupos[ordem[i]].valor.GreaterThan(grupos[ordem[j]].valor)
	})

	ranking := make([]ItemRanking, 0, len(ordem))
	for _, u := range ordem {
		g := grupos[u]
		ranking = append(ranking, ItemRanking{
			Unidade:            u,
			Tipo:               ClassificarUnidade(u).Rotulo,
			TotalValorEconomia: g.valor.InexactFloat64(),
			TotalKm:            g.km.InexactFloat64(),
			Registros:          g.registros,
		})
	}
	return ranking
}

// OrdenarRegistros ordena por período (mais recente primeiro), depois GERAL,
// MATRIZ e demais, e por fim pelo nome da unidade.
func OrdenarRegistros(regs []models.RegistroEconomia) {
	sort.SliceStable(regs, func(i, j int) bool {
		pi, pj := periodoDe(regs[i]), periodoDe(regs[j])
		if pi != pj {
			return pi > pj
		}
		oi, oj := ClassificarUnidade(regs[i].Unidade).Ordem, ClassificarUnidade(regs[j].Unidade).Ordem
		if oi != oj {
			return oi < oj
		}
		return regs[i].Unidade < regs[j].Unidade
	})
}

func periodoDe(r models.RegistroEconomia) string {
	if r.PeriodoFormatado != "" {
		return r.PeriodoFormatado
	}
	return relatorio.PeriodoDoTexto(r.Periodo)
}

type UnidadeClassificada struct {
	Unidade string `json:"unidade"`
	Tipo    string `json:"tipo"`
	Ordem   int    `json:"ordem"`
}

// ClassificarUnidades ordena por tipo (total, principal, operacional),
// mantendo a ordem de entrada dentro de cada tipo.
func ClassificarUnidades(unidades []string) []UnidadeClassificada {
	out := make([]UnidadeClassificada, 0, len(unidades))
	for _, u := range unidades {
		c := ClassificarUnidade(u)
		out = append(out, UnidadeClassificada{Unidade: u, Tipo: c.Tipo, Ordem: c.Ordem})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ordem < out[j].Ordem })
	return out
}

func contem(unidades []string, alvo string) bool {
	for _, u := range unidades {
		if u == alvo {
			return true
		}
	}
	return false
}
