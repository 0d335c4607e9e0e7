package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func capturar(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestInit_FiltraNivel(t *testing.T) {
	buf := capturar(t, "warn")

	Info().Msg("não deve aparecer")
	Warn().Msg("deve aparecer")

	out := buf.String()
	if strings.Contains(out, "não deve aparecer") {
		t.Error("info emitido com nível warn")
	}
	if !strings.Contains(out, "deve aparecer") {
		t.Error("warn não emitido")
	}
}

func TestCtx_IncluiRequestID(t *testing.T) {
	buf := capturar(t, "info")

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Error().Err(errors.New("falhou")).Msg("consulta")

	var linha map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &linha); err != nil {
		t.Fatalf("saída não é JSON: %v (%q)", err, buf.String())
	}
	if linha["request_id"] != "req-123" {
		t.Errorf("request_id = %v", linha["request_id"])
	}
	if linha["error"] != "falhou" || linha["message"] != "consulta" {
		t.Errorf("linha = %v", linha)
	}
}

func TestCtx_SemRequestID(t *testing.T) {
	buf := capturar(t, "info")
	Ctx(context.Background()).Info().Msg("x")
	if strings.Contains(buf.String(), "request_id") {
		t.Error("request_id não deveria aparecer sem contexto")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":    "debug",
		"WARNING":  "warn",
		"":         "info",
		"invalido": "info",
		"disabled": "disabled",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
