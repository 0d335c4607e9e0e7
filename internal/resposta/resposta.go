// Package resposta escreve os envelopes JSON da API e mapeia erros para
// 400, 404 e 500.
package resposta

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/desempenho/api-motoristas/internal/logging"
	"github.com/desempenho/api-motoristas/internal/utils/db"
	"github.com/desempenho/api-motoristas/internal/validacao"
)

// MensagemInterna é a mensagem genérica de 500 quando a rota não define outra.
const MensagemInterna = "Erro interno do servidor"

type lista struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Total   int  `json:"total"`
}

type item struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type falha struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON escreve v com o status informado.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("falha ao escrever resposta")
	}
}

// Lista responde {success, data, total}.
func Lista[T any](w http.ResponseWriter, data []T) {
	if data == nil {
		data = []T{}
	}
	JSON(w, http.StatusOK, lista{Success: true, Data: data, Total: len(data)})
}

// Item responde {success, data}.
func Item(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, item{Success: true, Data: data})
}

// Array responde o array cru, nunca null.
func Array[T any](w http.ResponseWriter, data []T) {
	if data == nil {
		data = []T{}
	}
	JSON(w, http.StatusOK, data)
}

func Falha(w http.ResponseWriter, status int, mensagem string) {
	JSON(w, status, falha{Success: false, Error: mensagem})
}

func NaoEncontrado(w http.ResponseWriter, mensagem string) {
	Falha(w, http.StatusNotFound, mensagem)
}

// Erro decide o status a partir de err: falhas de validação viram 400 com a
// mensagem do campo; o resto vira 500 com a mensagem genérica, e o erro real
// fica só no log.
func Erro(w http.ResponseWriter, r *http.Request, err error, mensagem500 string) {
	if validacao.EhErro(err) {
		Falha(w, http.StatusBadRequest, err.Error())
		return
	}
	if mensagem500 == "" {
		mensagem500 = MensagemInterna
	}

	ev := logging.Ctx(r.Context()).Error()
	if errors.Is(err, context.Canceled) {
		ev = logging.Ctx(r.Context()).Warn()
	}
	ev.Err(err).
		Str("codigo", db.CodigoErro(err)).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("falha ao atender requisição")

	Falha(w, http.StatusInternalServerError, mensagem500)
}

// Decodificar lê o corpo JSON em dst. Corpo vazio ou malformado vira erro de
// validação.
func Decodificar(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &validacao.Erro{Campo: "corpo", Mensagem: "Corpo da requisição vazio"}
		}
		return &validacao.Erro{Campo: "corpo", Mensagem: "Payload inválido"}
	}
	return nil
}
