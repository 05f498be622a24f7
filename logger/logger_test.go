package logger

import (
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danyloborovskyi/caption-studio-back-sub003/meta"
)

func newObserved(t *testing.T) (Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger{zap.New(core).Sugar()}, logs
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "json", cfg: Config{Level: "info", Encoding: "json"}},
		{name: "pretty", cfg: Config{Level: "debug", Encoding: "pretty"}},
		{name: "disabled ignores level", cfg: Config{Level: "bogus", Disable: true}},
		{name: "invalid level", cfg: Config{Level: "bogus", Encoding: "json"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.cfg)

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestWarnx(t *testing.T) {
	l, logs := newObserved(t)

	l.Warnx(errx.New(
		"upload rejected",
		errx.WithCode("STORAGE_ERROR"),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(errx.D{"path": "a.png"}),
	))
	l.Warnx(errors.New("plain failure"))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "upload rejected", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "STORAGE_ERROR", fields["error_code"])
	assert.Equal(t, errx.T_Conflict.String(), fields["error_type"])
	assert.Contains(t, fields, "error_details")

	assert.Equal(t, "plain failure", entries[1].Message)
	assert.NotContains(t, entries[1].ContextMap(), "error_code")
}

func TestErrorx(t *testing.T) {
	l, logs := newObserved(t)

	l.Errorx(errx.New("boom", errx.WithCode("X")))

	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestWithContext(t *testing.T) {
	l, logs := newObserved(t)
	ctx := meta.InjectMetaToContext(t.Context(), map[meta.ContextKey]string{
		meta.TraceID:  "trace-1",
		meta.FilePath: "uploads/cat.png",
	})

	l.WithContext(ctx).Named("ingest").Info("uploaded")
	l.WithContext(t.Context()).Info("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ingest", entries[0].LoggerName)
	assert.Equal(t, "trace-1", entries[0].ContextMap()["trace_id"])
	assert.Equal(t, "uploads/cat.png", entries[0].ContextMap()["file_path"])
	assert.Empty(t, entries[1].ContextMap())
}

func TestNop(t *testing.T) {
	l := Nop()

	assert.NotPanics(t, func() {
		l.With("k", "v").Warnx(errors.New("ignored"))
		l.Infof("%d", 1)
	})
}
