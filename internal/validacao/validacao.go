// Package validacao centraliza a validação de parâmetros de rota, query e
// corpo das requisições, com mensagens em português por campo.
package validacao

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	periodoRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// Erro é uma falha de validação de um único campo. Vira resposta 400.
type Erro struct {
	Campo    string
	Mensagem string
}

func (e *Erro) Error() string {
	return e.Mensagem
}

// EhErro informa se err (ou algo que ele embrulha) é uma falha de validação.
func EhErro(err error) bool {
	var e *Erro
	return errors.As(err, &e)
}

func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(nomeDoCampo)
		_ = validate.RegisterValidation("periodo", func(fl validator.FieldLevel) bool {
			return periodoRegex.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("somentedigitos", func(fl validator.FieldLevel) bool {
			return SomenteDigitos(fl.Field().String())
		})
	})
	return validate
}

// nomeDoCampo usa o nome JSON (ou koanf) do campo nas mensagens.
func nomeDoCampo(f reflect.StructField) string {
	for _, tag := range []string{"json", "koanf"} {
		nome := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if nome == "-" {
			return ""
		}
		if nome != "" {
			return nome
		}
	}
	return f.Name
}

// SomenteDigitos diz se s é não vazio e contém apenas 0-9.
func SomenteDigitos(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Struct valida s e traduz a primeira falha para *Erro.
func Struct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return &Erro{Campo: "desconhecido", Mensagem: err.Error()}
	}
	fe := ves[0]
	return &Erro{Campo: fe.Field(), Mensagem: traduzir(fe)}
}

var mensagens = map[string]string{
	"required":       "Campo %q é obrigatório",
	"periodo":        "Campo %q deve estar no formato YYYY-MM",
	"somentedigitos": "Campo %q deve conter apenas dígitos",
}

var mensagensComParametro = map[string]string{
	"oneof": "Campo %q deve ser um de: %s",
	"len":   "Campo %q deve conter exatamente %s caracteres",
	"min":   "Campo %q deve ser no mínimo %s",
	"max":   "Campo %q deve ser no máximo %s",
	"gte":   "Campo %q deve ser maior ou igual a %s",
	"lte":   "Campo %q deve ser menor ou igual a %s",
}

func traduzir(fe validator.FieldError) string {
	if t, ok := mensagens[fe.Tag()]; ok {
		return fmt.Sprintf(t, fe.Field())
	}
	if t, ok := mensagensComParametro[fe.Tag()]; ok {
		return fmt.Sprintf(t, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("Campo %q inválido (%s)", fe.Field(), fe.Tag())
}

// Obrigatorio falha quando um parâmetro de query está ausente.
func Obrigatorio(nome, valor string) error {
	if valor == "" {
		return &Erro{Campo: nome, Mensagem: fmt.Sprintf("Parâmetro %q é obrigatório", nome)}
	}
	return nil
}

// Caracteres exige exatamente tamanho caracteres. As rotas de administrador só
// conferem o comprimento, não o conteúdo.
func Caracteres(nome, valor string, tamanho int) error {
	if err := GetValidator().Var(valor, fmt.Sprintf("required,len=%d", tamanho)); err != nil {
		return &Erro{
			Campo:    nome,
			Mensagem: fmt.Sprintf("Parâmetro %q deve conter exatamente %d caracteres", nome, tamanho),
		}
	}
	return nil
}

// Digitos exige exatamente tamanho dígitos numéricos.
func Digitos(nome, valor string, tamanho int) error {
	if err := GetValidator().Var(valor, fmt.Sprintf("required,len=%d,somentedigitos", tamanho)); err != nil {
		return &Erro{
			Campo:    nome,
			Mensagem: fmt.Sprintf("%s deve conter exatamente %d dígitos numéricos", nome, tamanho),
		}
	}
	return nil
}

// Periodo exige o formato YYYY-MM.
func Periodo(valor string) error {
	if err := GetValidator().Var(valor, "required,periodo"); err != nil {
		return &Erro{Campo: "periodo", Mensagem: "Período deve estar no formato YYYY-MM"}
	}
	return nil
}

// CodigoEmpresa exige o código de empresa de 2 caracteres.
func CodigoEmpresa(nome, valor string) error {
	return Caracteres(nome, valor, 2)
}
