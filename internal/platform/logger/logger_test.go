package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" INFO ":  zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.DebugLevel,
		"verbose": zerolog.DebugLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, level(in), "level(%q)", in)
	}
}

func TestBuild_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "json", Service: "biasdb-test", Writer: &buf})

	l.Debug().Msg("dropped")
	l.Info().Str("hash", "abc").Msg("stored")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "stored", line["message"])
	require.Equal(t, "biasdb-test", line["service"])
	require.Equal(t, "abc", line["hash"])
	require.NotContains(t, buf.String(), "dropped")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "")
	t.Setenv("LOG_CALLER", "true")

	require.Equal(t, Options{Level: "warn", Format: "json", Service: "biasdb", Caller: true}, FromEnv())
}

func TestChildren(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})
	if root.Load() == nil {
		t.Fatal("root logger not set")
	}
	// another test may have initialised the root first
	base := Get().Output(&buf)
	root.Store(&base)

	require.Same(t, Get(), C(context.Background()))
	require.Same(t, Get(), Named(""))

	buf.Reset()
	C(WithRequest(context.Background(), "req-123")).Info().Msg("scoped")
	require.Contains(t, buf.String(), `"request_id":"req-123"`)

	buf.Reset()
	Named("entries.report").Info().Msg("named")
	require.Contains(t, buf.String(), `"component":"entries.report"`)

	require.Equal(t, context.Background(), WithRequest(context.Background(), ""))
}
