package relatorio

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/desempenho/api-motoristas/internal/models"
)

// OperadorBusca é um operador único na lista do administrador, com os campos
// normalizados usados pela busca.
type OperadorBusca struct {
	Digitos              string `json:"digitos"`
	Nome                 string `json:"nome"`
	Matricula            string `json:"matricula"`
	Empresa              string `json:"empresa"`
	NomeNormalizado      string `json:"nomeNormalizado"`
	MatriculaNormalizada string `json:"matriculaNormalizada"`
	DigitosNormalizado   string `json:"digitosNormalizado"`
}

// NormalizarTexto decompõe (NFD), remove acentos, passa para maiúsculas e
// descarta tudo que não for A-Z, 0-9 ou espaço.
func NormalizarTexto(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	semAcento, _, err := transform.String(t, s)
	if err != nil {
		semAcento = s
	}
	semAcento = strings.ToUpper(semAcento)

	var b strings.Builder
	b.Grow(len(semAcento))
	for _, r := range semAcento {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DeduplicarOperadores deixa um operador por código. Um código repetido
// mantém a posição da primeira ocorrência e os dados da última.
func DeduplicarOperadores(ops []models.Operador) []OperadorBusca {
	posicao := make(map[string]int, len(ops))
	out := make([]OperadorBusca, 0, len(ops))
	for _, op := range ops {
		digitos := op.Digitos
		if digitos == "" {
			digitos = op.SeteDigitosCPF
		}
		if digitos == "" {
			continue
		}

		nome := op.Nome
		if nome == "" {
			nome = "Operador " + digitos
		}
		matricula := op.Matricula
		if matricula == "" {
			matricula = "N/A"
		}
		b := OperadorBusca{
			Digitos:              digitos,
			Nome:                 nome,
			Matricula:            matricula,
			Empresa:              op.Empresa,
			NomeNormalizado:      NormalizarTexto(nome),
			MatriculaNormalizada: NormalizarTexto(matricula),
			DigitosNormalizado:   NormalizarTexto(digitos),
		}

		if i, ok := posicao[digitos]; ok {
			out[i] = b
			continue
		}
		posicao[digitos] = len(out)
		out = append(out, b)
	}
	return out
}

// BuscarOperadores filtra por substring em nome, matrícula ou código, sem
// diferenciar acentos nem caixa. Termo vazio devolve todos.
func BuscarOperadores(ops []OperadorBusca, termo string) []OperadorBusca {
	t := strings.TrimSpace(NormalizarTexto(termo))
	if t == "" {
		return ops
	}
	out := []OperadorBusca{}
	for _, op := range ops {
		if strings.Contains(op.NomeNormalizado, t) ||
			strings.Contains(op.MatriculaNormalizada, t) ||
			strings.Contains(op.DigitosNormalizado, t) {
			out = append(out, op)
		}
	}
	return out
}
