// Package cliente consome a API de desempenho do lado do administrador e
// mantém o estado do painel de um operador.
package cliente

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/desempenho/api-motoristas/internal/logging"
	"github.com/desempenho/api-motoristas/internal/models"
)

// ErroAPI é uma resposta fora de 2xx. Mensagem é o campo "error" do corpo,
// quando houver.
type ErroAPI struct {
	Status   int
	Mensagem string
}

func (e *ErroAPI) Error() string {
	if e.Mensagem == "" {
		return fmt.Sprintf("api respondeu %d", e.Status)
	}
	return fmt.Sprintf("api respondeu %d: %s", e.Status, e.Mensagem)
}

// NaoEncontrado informa se err é um 404 da API.
func NaoEncontrado(err error) bool {
	var e *ErroAPI
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

type Cliente struct {
	base  string
	http  *http.Client
	token string
}

// Novo cria o cliente. httpClient nil usa um cliente com timeout de 30s.
func Novo(baseURL string, httpClient *http.Client) *Cliente {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Cliente{base: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Total   int    `json:"total"`
	Error   string `json:"error"`
}

type Sessao struct {
	CodigoEmpresa string `json:"codigo_empresa"`
	NomeEmpresa   string `json:"nome_empresa"`
	Digitos       string `json:"digitos"`
	Token         string `json:"token,omitempty"`
}

// LoginAdmin autentica o administrador. Se a API emitir token, ele passa a
// ir no Authorization das chamadas seguintes.
func (c *Cliente) LoginAdmin(ctx context.Context, digitos string) (*Sessao, error) {
	corpo, err := json.Marshal(map[string]string{"digitos": digitos})
	if err != nil {
		return nil, err
	}
	var env envelope[Sessao]
	if err := c.fazer(ctx, http.MethodPost, "/api/admin/login", bytes.NewReader(corpo), &env); err != nil {
		return nil, err
	}
	c.token = env.Data.Token
	return &env.Data, nil
}

func (c *Cliente) Operadores(ctx context.Context, admin string) ([]models.Operador, error) {
	var env envelope[[]models.Operador]
	err := c.fazer(ctx, http.MethodGet, "/api/admin/operadores/"+url.PathEscape(admin), nil, &env)
	return env.Data, err
}

func (c *Cliente) Movimentos(ctx context.Context, admin, operador string) ([]models.Movimento, error) {
	var env envelope[[]models.Movimento]
	caminho := "/api/admin/movimentos/" + url.PathEscape(admin) + "/operador/" + url.PathEscape(operador)
	err := c.fazer(ctx, http.MethodGet, caminho, nil, &env)
	return env.Data, err
}

// Eventos traz os eventos do administrador, opcionalmente de um período.
// "Nenhum evento" (404) volta como lista vazia.
func (c *Cliente) Eventos(ctx context.Context, admin, periodo string) ([]models.Evento, error) {
	caminho := "/api/admin/eventos/" + url.PathEscape(admin)
	if periodo != "" {
		caminho += "?" + url.Values{"periodo": {periodo}}.Encode()
	}
	var env envelope[[]models.Evento]
	err := c.fazer(ctx, http.MethodGet, caminho, nil, &env)
	if NaoEncontrado(err) {
		return []models.Evento{}, nil
	}
	return env.Data, err
}

func (c *Cliente) fazer(ctx context.Context, method, caminho string, corpo io.Reader, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+caminho, corpo)
	if err != nil {
		return fmt.Errorf("montar requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if corpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, caminho, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var falha struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&falha)
		logging.Debug().Str("method", method).Str("path", caminho).Int("status", resp.StatusCode).Msg("resposta não OK")
		return &ErroAPI{Status: resp.StatusCode, Mensagem: falha.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decodificar %s: %w", caminho, err)
	}
	return nil
}
