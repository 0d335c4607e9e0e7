package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/desempenho/api-motoristas/internal/logging"
	"github.com/desempenho/api-motoristas/internal/resposta"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// ClaimsDoContexto devolve as claims colocadas por ExigirToken.
func ClaimsDoContexto(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(CtxClaims).(*Claims)
	return c, ok
}

// ExigirToken protege rotas com o perfil informado. O sujeito do token tem de
// ser igual ao parâmetro de rota (ou de query) chamado parametro. Com o
// serviço desabilitado, deixa tudo passar.
func (s *Servico) ExigirToken(perfil, parametro string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if !s.Habilitado() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				resposta.Falha(w, http.StatusUnauthorized, "Token ausente")
				return
			}
			claims, err := s.Validar(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("token recusado")
				resposta.Falha(w, http.StatusUnauthorized, "Token inválido")
				return
			}
			if claims.Perfil != perfil {
				resposta.Falha(w, http.StatusForbidden, "Perfil sem acesso a este recurso")
				return
			}
			alvo := mux.Vars(r)[parametro]
			if alvo == "" {
				alvo = r.URL.Query().Get(parametro)
			}
			if alvo != "" && alvo != claims.Subject {
				resposta.Falha(w, http.StatusForbidden, "Token não pertence a este código")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxClaims, claims)))
		})
	}
}
