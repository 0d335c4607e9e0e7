// Comando painel mostra, no terminal, o painel de um operador visto pelo
// administrador.
//
//	PAINEL_ADMIN=ADM12345 painel                     # lista os operadores
//	PAINEL_ADMIN=ADM12345 painel 12345678 [2024-03]  # painel do operador
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/desempenho/api-motoristas/internal/cliente"
	"github.com/desempenho/api-motoristas/internal/logging"
	"github.com/desempenho/api-motoristas/internal/relatorio"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

type opcoes struct {
	APIURL  string        `koanf:"api_url" validate:"required,url"`
	Admin   string        `koanf:"admin" validate:"required,len=8"`
	Timeout time.Duration `koanf:"timeout"`
	Log     string        `koanf:"log"`
}

func carregar() (opcoes, error) {
	k := koanf.New(".")
	padrao := opcoes{APIURL: "http://localhost:3000", Timeout: 30 * time.Second, Log: "warn"}
	if err := k.Load(structs.Provider(padrao, "koanf"), nil); err != nil {
		return opcoes{}, err
	}
	err := k.Load(env.Provider("PAINEL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PAINEL_"))
	}), nil)
	if err != nil {
		return opcoes{}, err
	}
	var o opcoes
	if err := k.Unmarshal("", &o); err != nil {
		return opcoes{}, err
	}
	return o, validacao.Struct(o)
}

func main() {
	_ = godotenv.Load()

	o, err := carregar()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuração:", err)
		os.Exit(2)
	}
	logging.Init(logging.Config{Level: o.Log, Format: "console"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	api := cliente.Novo(o.APIURL, nil)
	if _, err := api.LoginAdmin(ctx, o.Admin); err != nil {
		sair(err)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		ops, err := api.Operadores(ctx, o.Admin)
		if err != nil {
			sair(err)
		}
		for _, op := range relatorio.DeduplicarOperadores(ops) {
			fmt.Printf("%s  %-8s  %s\n", op.Digitos, op.Matricula, op.Nome)
		}
		return
	}

	d := cliente.NovoDashboard(api, o.Admin)
	defer d.Encerrar()
	p, err := d.SelecionarOperador(ctx, args[0])
	if err != nil {
		sair(err)
	}
	if len(args) > 1 {
		if p, err = d.MudarPeriodo(ctx, args[1]); err != nil {
			sair(err)
		}
	}
	imprimir(p)
}

func imprimir(p relatorio.Painel) {
	fmt.Printf("Período: %s\n\n", p.PeriodoExibicao)
	if p.SerieMensal == nil {
		fmt.Println("Sem dados suficientes para o gráfico")
	}
	for _, s := range p.SerieMensal {
		fmt.Printf("  %s  %6.2f\n", s.Rotulo, s.Media)
	}
	out, err := json.MarshalIndent(struct {
		Movimentos any `json:"movimentos"`
		Eventos    any `json:"eventos"`
	}{p.Movimentos, p.Eventos}, "", "  ")
	if err != nil {
		sair(err)
	}
	fmt.Println(string(out))
}

func sair(err error) {
	logging.Error().Err(err).Msg("painel")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
