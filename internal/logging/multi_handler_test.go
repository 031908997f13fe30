package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
	attrs   []slog.Attr
}

func (r *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level
}

func (r *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	r.records = append(r.records, record)
	return nil
}

func (r *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	r.attrs = append(r.attrs, attrs...)
	return r
}

func (r *recordingHandler) WithGroup(string) slog.Handler { return r }

func TestMultiHandler_FanOutRespectsLevels(t *testing.T) {
	info := &recordingHandler{level: slog.LevelInfo}
	errOnly := &recordingHandler{level: slog.LevelError}
	logger := slog.New(NewMultiHandler(info, errOnly))

	logger.Info("pedido criado")
	logger.Error("pagamento falhou")

	require.Len(t, info.records, 2)
	require.Len(t, errOnly.records, 1)
	assert.Equal(t, "pagamento falhou", errOnly.records[0].Message)
}

func TestMultiHandler_EnabledWhenAnyHandlerIs(t *testing.T) {
	m := NewMultiHandler(
		&recordingHandler{level: slog.LevelError},
		&recordingHandler{level: slog.LevelDebug},
	)
	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))

	errOnly := NewMultiHandler(&recordingHandler{level: slog.LevelError})
	assert.False(t, errOnly.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewLogger_CarriesServiceAttr(t *testing.T) {
	sink := &recordingHandler{level: slog.LevelInfo}
	logger := NewLogger(sink)

	logger.Info("servidor iniciado")

	require.Len(t, sink.attrs, 1)
	assert.Equal(t, "service", sink.attrs[0].Key)
	assert.Equal(t, serviceName, sink.attrs[0].Value.String())
}
