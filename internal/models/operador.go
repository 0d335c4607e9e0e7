// Package models define uma struct por view ou tabela consultada pela API.
// As views são mantidas por uma carga externa; a API só lê, exceto
// config_colunas.
package models

import "time"

// Operador é a linha de login (vw_operador_movimento) ou de listagem de
// operadores do administrador (vw_movimentos_admin). Só um dos campos de
// identificação vem preenchido, conforme o esquema em uso.
type Operador struct {
	ChaveFun       string   `gorm:"column:chave_fun" json:"chave_fun"`
	Matricula      string   `gorm:"column:matricula" json:"matricula"`
	Nome           string   `gorm:"column:nome" json:"nome"`
	Digitos        string   `gorm:"column:digitos" json:"digitos,omitempty"`
	SeteDigitosCPF string   `gorm:"column:sete_digitos_cpf" json:"sete_digitos_cpf,omitempty"`
	Periodo        string   `gorm:"column:periodo" json:"periodo,omitempty"`
	MediaPontos    *float64 `gorm:"column:media_pontos" json:"media_pontos"`
	Desempenho     *string  `gorm:"column:desempenho" json:"desempenho"`
	Ranking        *int64   `gorm:"column:ranking" json:"ranking"`
	Empresa        string   `gorm:"column:empresa" json:"empresa,omitempty"`
}

// Movimento é o registro diário de desempenho de um operador.
type Movimento struct {
	ChaveFun        string    `gorm:"column:chave_fun" json:"chave_fun"`
	Matricula       string    `gorm:"column:matricula" json:"matricula"`
	Nome            string    `gorm:"column:nome" json:"nome"`
	Digitos         string    `gorm:"column:digitos" json:"digitos,omitempty"`
	SeteDigitosCPF  string    `gorm:"column:sete_digitos_cpf" json:"sete_digitos_cpf,omitempty"`
	Empresa         string    `gorm:"column:empresa" json:"empresa,omitempty"`
	Administrador   string    `gorm:"column:administrador" json:"administrador,omitempty"`
	Periodo         string    `gorm:"column:periodo" json:"periodo,omitempty"`
	DataMovimento   time.Time `gorm:"column:data_movimento" json:"data_movimento"`
	Veiculo         string    `gorm:"column:veiculo" json:"veiculo"`
	Meta            *float64  `gorm:"column:meta" json:"meta"`
	CorSelo         string    `gorm:"column:cor_selo" json:"cor_selo"`
	PontuacaoDiaria *float64  `gorm:"column:pontuacao_diaria" json:"pontuacao_diaria"`
	MediaPontos     *float64  `gorm:"column:media_pontos" json:"media_pontos"`
	Desempenho      *string   `gorm:"column:desempenho" json:"desempenho"`
	Ranking         *int64    `gorm:"column:ranking" json:"ranking"`
}

// Cores de selo usadas pelo painel.
const (
	SeloVermelho = "VERMELHO"
	SeloVerde    = "VERDE"
	SeloDourado  = "DOURADO"
	SeloAmarelo  = "AMARELO"
)
