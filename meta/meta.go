// Package meta carries request metadata through context for log enrichment.
package meta

import (
	"context"
	"sync"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID correlates all log entries of one operation.
	TraceID ContextKey = "trace_id"

	// RequestUserID identifies the user owning the operation.
	RequestUserID ContextKey = "request_user_id"

	// FileID identifies the file record being processed.
	FileID ContextKey = "file_id"

	// FilePath is the object path of the file being processed.
	FilePath ContextKey = "file_path"

	// ServiceName identifies the running program.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the running program.
	ServiceVersion ContextKey = "service_version"
)

//nolint:gochecknoglobals // ordered list of known keys
var allKeys = []ContextKey{
	TraceID,
	RequestUserID,
	FileID,
	FilePath,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext returns ctx carrying every non-empty value of data.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns the non-empty values of all known keys found in ctx.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v := Find(ctx, k); v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the value stored under key, or "" when absent.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

//nolint:gochecknoglobals // process-wide service identity
var (
	serviceName    string
	serviceVersion string
	serviceOnce    sync.Once
)

// SetServiceInfo records the program name and version. Only the first call has effect.
func SetServiceInfo(name, version string) {
	serviceOnce.Do(func() {
		serviceName = name
		serviceVersion = version
	})
}

// WithServiceInfo returns ctx carrying the values recorded by SetServiceInfo.
func WithServiceInfo(ctx context.Context) context.Context {
	return InjectMetaToContext(ctx, map[ContextKey]string{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	})
}
