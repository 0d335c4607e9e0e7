package validacao

import (
	"errors"
	"fmt"
	"testing"
)

func TestDigitos(t *testing.T) {
	tests := []struct {
		name    string
		valor   string
		tamanho int
		wantErr bool
	}{
		{"oito dígitos", "12345678", 8, false},
		{"sete dígitos no esquema antigo", "1234567", 7, false},
		{"vazio", "", 8, true},
		{"curto", "1234567", 8, true},
		{"longo", "123456789", 8, true},
		{"com letra", "1234567a", 8, true},
		{"com sinal", "-1234567", 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Digitos("digitos", tt.valor, tt.tamanho)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Digitos(%q, %d) err = %v, wantErr %v", tt.valor, tt.tamanho, err, tt.wantErr)
			}
			if err != nil && !EhErro(err) {
				t.Errorf("erro deveria ser *Erro, veio %T", err)
			}
		})
	}
}

func TestDigitos_Mensagem(t *testing.T) {
	err := Digitos("digitos", "123", 8)
	want := "digitos deve conter exatamente 8 dígitos numéricos"
	if err == nil || err.Error() != want {
		t.Fatalf("mensagem = %v, want %q", err, want)
	}
}

func TestCaracteres(t *testing.T) {
	if err := Caracteres("digitosAdmin", "ABCD1234", 8); err != nil {
		t.Errorf("8 caracteres alfanuméricos deveriam passar: %v", err)
	}
	err := Caracteres("digitosAdmin", "123", 8)
	want := `Parâmetro "digitosAdmin" deve conter exatamente 8 caracteres`
	if err == nil || err.Error() != want {
		t.Fatalf("mensagem = %v, want %q", err, want)
	}
}

func TestPeriodo(t *testing.T) {
	for _, p := range []string{"2024-03", "1999-12"} {
		if err := Periodo(p); err != nil {
			t.Errorf("Periodo(%q) = %v", p, err)
		}
	}
	for _, p := range []string{"", "2024-3", "03/2024", "2024-03-01", "TODOS"} {
		if err := Periodo(p); err == nil {
			t.Errorf("Periodo(%q) deveria falhar", p)
		}
	}
}

func TestObrigatorio(t *testing.T) {
	err := Obrigatorio("digitos", "")
	want := `Parâmetro "digitos" é obrigatório`
	if err == nil || err.Error() != want {
		t.Fatalf("mensagem = %v, want %q", err, want)
	}
	if Obrigatorio("digitos", "x") != nil {
		t.Error("valor presente não deveria falhar")
	}
}

type corpo struct {
	Empresa string `json:"empresa" validate:"required,len=2"`
	Largura int    `json:"largura" validate:"min=0"`
}

func TestStruct_UsaNomeJSON(t *testing.T) {
	err := Struct(corpo{Empresa: "", Largura: 10})
	var e *Erro
	if !errors.As(err, &e) {
		t.Fatalf("esperava *Erro, veio %v", err)
	}
	if e.Campo != "empresa" {
		t.Errorf("Campo = %q, want empresa", e.Campo)
	}

	err = Struct(corpo{Empresa: "RX", Largura: -1})
	if !errors.As(err, &e) || e.Campo != "largura" {
		t.Fatalf("esperava falha em largura, veio %v", err)
	}

	if err := Struct(corpo{Empresa: "RX", Largura: 0}); err != nil {
		t.Errorf("corpo válido falhou: %v", err)
	}
}

func TestEhErro_Embrulhado(t *testing.T) {
	err := fmt.Errorf("contexto: %w", &Erro{Campo: "x", Mensagem: "y"})
	if !EhErro(err) {
		t.Error("EhErro deveria enxergar através do %w")
	}
	if EhErro(errors.New("outro")) {
		t.Error("erro comum não é de validação")
	}
}
