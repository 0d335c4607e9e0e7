package models

import "time"

// ConfigColuna guarda a preferência de exibição de uma coluna por empresa e
// tela. A chave natural é (empresa, tela, coluna).
type ConfigColuna struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Empresa   string    `gorm:"not null;uniqueIndex:config_colunas_empresa_tela_coluna_key,priority:1" json:"empresa"`
	Tela      string    `gorm:"not null;uniqueIndex:config_colunas_empresa_tela_coluna_key,priority:2" json:"tela"`
	Coluna    string    `gorm:"not null;uniqueIndex:config_colunas_empresa_tela_coluna_key,priority:3" json:"coluna"`
	Visivel   bool      `gorm:"not null" json:"visivel"`
	Largura   int       `json:"largura"`
	Ordem     int       `json:"ordem"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ConfigColuna) TableName() string { return "config_colunas" }
