// Package middleware reúne os middlewares HTTP aplicados a todas as rotas.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/desempenho/api-motoristas/internal/logging"
	"github.com/desempenho/api-motoristas/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

// statusWriter guarda o status escrito pelo handler.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// RequestID reaproveita o X-Request-ID recebido ou gera um novo, e o coloca
// no contexto e na resposta.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = logging.GenerateRequestID()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// Recover converte panics em 500 sem derrubar o servidor.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Ctx(r.Context()).Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("panic no handler")
				http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Observar registra métricas e o log de acesso de cada requisição. O endpoint
// usa o template da rota (/api/movimentos/{digitos}) para não explodir a
// cardinalidade.
func Observar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		duracao := time.Since(inicio)
		endpoint := rotaTemplate(r)
		metrics.RecordAPIRequest(r.Method, endpoint, strconv.Itoa(sw.code()), duracao)

		ev := logging.Ctx(r.Context()).Info()
		if sw.code() >= http.StatusInternalServerError {
			ev = logging.Ctx(r.Context()).Warn()
		}
		ev.Str("method", r.Method).
			Str("endpoint", endpoint).
			Int("status", sw.code()).
			Int("bytes", sw.bytes).
			Dur("duracao", duracao).
			Msg("requisição")
	})
}

func rotaTemplate(r *http.Request) string {
	if rota := mux.CurrentRoute(r); rota != nil {
		if tpl, err := rota.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "desconhecida"
}
