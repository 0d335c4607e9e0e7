package models

// Evento é uma ocorrência pontuada (infração ou elogio) de um operador num
// período. O sinal de TotalPontosEvento decide o destaque no painel.
type Evento struct {
	ChaveFun          string   `gorm:"column:chave_fun" json:"chave_fun"`
	Periodo           string   `gorm:"column:periodo" json:"periodo"`
	DscEvento         string   `gorm:"column:dsc_evento" json:"dsc_evento"`
	Total             *float64 `gorm:"column:total" json:"total"`
	PontoEvento       *float64 `gorm:"column:ponto_evento" json:"ponto_evento"`
	TotalPontosEvento *float64 `gorm:"column:total_pontos_evento" json:"total_pontos_evento"`
	Digitos           string   `gorm:"column:digitos" json:"digitos"`
	Administrador     string   `gorm:"column:administrador" json:"administrador,omitempty"`
	Nome              string   `gorm:"column:nome" json:"nome,omitempty"`
	Matricula         string   `gorm:"column:matricula" json:"matricula,omitempty"`
}

// Pontos devolve TotalPontosEvento, com nulo como zero.
func (e Evento) Pontos() float64 {
	if e.TotalPontosEvento == nil {
		return 0
	}
	return *e.TotalPontosEvento
}

// EmpresaAdmin é a empresa cujo código de 8 caracteres serve de credencial
// do administrador.
type EmpresaAdmin struct {
	CodigoEmpresa string `gorm:"column:codigo_empresa" json:"codigo_empresa"`
	NomeEmpresa   string `gorm:"column:nome_empresa" json:"nome_empresa"`
	Digitos       string `gorm:"column:digitos" json:"digitos"`
}

func (EmpresaAdmin) TableName() string { return "empresas_admin" }

// Mestre é uma linha da tabela de ranking consolidada.
type Mestre struct {
	Empresa     string   `gorm:"column:empresa" json:"empresa"`
	Periodo     string   `gorm:"column:periodo" json:"periodo"`
	Matricula   string   `gorm:"column:matricula" json:"matricula"`
	Nome        string   `gorm:"column:nome" json:"nome"`
	ChaveFun    string   `gorm:"column:chave_fun" json:"chave_fun"`
	Digitos     string   `gorm:"column:digitos" json:"digitos,omitempty"`
	MediaPontos *float64 `gorm:"column:media_pontos" json:"media_pontos"`
	Desempenho  *string  `gorm:"column:desempenho" json:"desempenho"`
	Ranking     *int64   `gorm:"column:ranking" json:"ranking"`
	CorSelo     string   `gorm:"column:cor_selo" json:"cor_selo,omitempty"`
}

func (Mestre) TableName() string { return "mestre" }
