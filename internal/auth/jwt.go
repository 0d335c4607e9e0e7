// Package auth emite e confere tokens HS256 opcionais. Com o token
// desabilitado (padrão), o código de dígitos continua sendo a única
// credencial.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/desempenho/api-motoristas/internal/config"
)

const (
	PerfilAdmin    = "admin"
	PerfilOperador = "operador"

	emissor = "api-motoristas"
)

type Claims struct {
	Perfil string `json:"perfil"`
	jwt.RegisteredClaims
}

type Servico struct {
	habilitado bool
	segredo    []byte
	validade   time.Duration
	agora      func() time.Time
}

func NovoServico(cfg config.SecurityConfig) *Servico {
	return &Servico{
		habilitado: cfg.TokenHabilitado,
		segredo:    []byte(cfg.JWTSecret),
		validade:   cfg.TokenValidade,
		agora:      time.Now,
	}
}

func (s *Servico) Habilitado() bool {
	return s != nil && s.habilitado
}

// Emitir gera o token de sujeito (o código de dígitos) e perfil. Com o
// serviço desabilitado devolve "" sem erro.
func (s *Servico) Emitir(sujeito, perfil string) (string, error) {
	if !s.Habilitado() {
		return "", nil
	}
	agora := s.agora()
	claims := &Claims{
		Perfil: perfil,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    emissor,
			Subject:   sujeito,
			IssuedAt:  jwt.NewNumericDate(agora),
			ExpiresAt: jwt.NewNumericDate(agora.Add(s.validade)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.segredo)
	if err != nil {
		return "", fmt.Errorf("assinar token: %w", err)
	}
	return tok, nil
}

// Validar confere assinatura, emissor e expiração.
func (s *Servico) Validar(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(emissor),
		jwt.WithTimeFunc(s.agora),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.segredo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
