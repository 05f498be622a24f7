package meta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danyloborovskyi/caption-studio-back-sub003/meta"
)

func TestInjectMetaToContext(t *testing.T) {
	tests := []struct {
		name       string
		initialCtx context.Context
		data       map[meta.ContextKey]string
		key        meta.ContextKey
		want       string
	}{
		{
			name:       "inject single value",
			initialCtx: t.Context(),
			data:       map[meta.ContextKey]string{meta.TraceID: "abc-123"},
			key:        meta.TraceID,
			want:       "abc-123",
		},
		{
			name:       "inject multiple values",
			initialCtx: t.Context(),
			data: map[meta.ContextKey]string{
				meta.TraceID:       "trace-1",
				meta.RequestUserID: "user-7",
				meta.FilePath:      "uploads/user-7/cat.png",
			},
			key:  meta.FilePath,
			want: "uploads/user-7/cat.png",
		},
		{
			name:       "skip empty values",
			initialCtx: t.Context(),
			data:       map[meta.ContextKey]string{meta.TraceID: "trace-1", meta.FileID: ""},
			key:        meta.FileID,
			want:       "",
		},
		{
			name:       "overwrite existing value",
			initialCtx: context.WithValue(t.Context(), meta.TraceID, "old"),
			data:       map[meta.ContextKey]string{meta.TraceID: "new"},
			key:        meta.TraceID,
			want:       "new",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			ctx := meta.InjectMetaToContext(tc.initialCtx, tc.data)

			// Assert
			assert.Equal(t, tc.want, meta.Find(ctx, tc.key))
		})
	}
}

func TestExtractMetaFromContext(t *testing.T) {
	// Arrange
	ctx := meta.InjectMetaToContext(t.Context(), map[meta.ContextKey]string{
		meta.TraceID:       "trace-1",
		meta.RequestUserID: "user-7",
	})
	ctx = context.WithValue(ctx, meta.FileID, 42)            // non-string values are ignored
	ctx = context.WithValue(ctx, meta.ContextKey("x"), "y") // unknown keys are ignored

	// Act
	got := meta.ExtractMetaFromContext(ctx)

	// Assert
	assert.Equal(t, map[meta.ContextKey]string{
		meta.TraceID:       "trace-1",
		meta.RequestUserID: "user-7",
	}, got)
	assert.Empty(t, meta.ExtractMetaFromContext(t.Context()))
}

func TestWithServiceInfo(t *testing.T) {
	meta.SetServiceInfo("capstudio", "v0.1.0")
	meta.SetServiceInfo("ignored", "ignored")

	ctx := meta.WithServiceInfo(t.Context())

	assert.Equal(t, "capstudio", meta.Find(ctx, meta.ServiceName))
	assert.Equal(t, "v0.1.0", meta.Find(ctx, meta.ServiceVersion))
}
