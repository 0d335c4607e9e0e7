package models

import "github.com/shopspring/decimal"

// Unidades especiais da economia de combustível.
const (
	UnidadeGeral  = "GERAL"
	UnidadeMatriz = "MATRIZ"
)

// RegistroEconomia é uma linha por empresa, unidade e período. Os valores
// NUMERIC chegam como decimal para que as somas não percam precisão.
type RegistroEconomia struct {
	Unidade          string          `gorm:"column:unidade" json:"unidade"`
	Empresa          string          `gorm:"column:empresa" json:"empresa"`
	Periodo          string          `gorm:"column:periodo" json:"periodo"`
	Base             decimal.Decimal `gorm:"column:base" json:"base"`
	Km               decimal.Decimal `gorm:"column:km" json:"km"`
	Qtde             decimal.Decimal `gorm:"column:qtde" json:"qtde"`
	Media            decimal.Decimal `gorm:"column:media" json:"media"`
	Percentual       decimal.Decimal `gorm:"column:percentual" json:"percentual"`
	ValorLitro       decimal.Decimal `gorm:"column:valor_litro" json:"valor_litro"`
	QtdeEconomia     decimal.Decimal `gorm:"column:qtde_economia" json:"qtde_economia"`
	ValorEconomia    decimal.Decimal `gorm:"column:valor_economia" json:"valor_economia"`
	PeriodoFormatado string          `gorm:"column:periodo_formatado" json:"periodo_formatado,omitempty"`
	PeriodoExibicao  string          `gorm:"column:periodo_exibicao" json:"periodo_exibicao,omitempty"`
	Ano              int             `gorm:"column:ano" json:"ano,omitempty"`
	Mes              int             `gorm:"column:mes" json:"mes,omitempty"`
}
