package logger

import (
	"context"
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // global logger singleton
var (
	global   atomic.Value // stores Logger
	setOnce  sync.Once
	initOnce sync.Once
)

// SetGlobal configures the global logger. It panics when called twice
// or when cfg cannot produce a logger.
func SetGlobal(cfg Config) {
	called := false
	setOnce.Do(func() {
		initOnce.Do(func() {})

		l, err := newLogger(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(l)
		called = true
	})
	if !called {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Global returns the global logger, creating a pretty debug logger on first use
// when SetGlobal was never called.
func Global() Logger {
	if l, ok := global.Load().(Logger); ok {
		return l
	}
	initOnce.Do(func() {
		l, err := newLogger(Config{Level: levelDebug, Encoding: encPretty})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.Store(l)
	})
	return global.Load().(Logger) //nolint:errcheck // always a Logger
}

// Info logs a message at info level using the global logger.
func Info(msg any) {
	Global().Info(msg)
}

// Infof logs a formatted message at info level using the global logger.
func Infof(format string, args ...any) {
	Global().Infof(format, args...)
}

// Warnx logs err at warn level using the global logger.
func Warnx(err error) {
	Global().Warnx(err)
}

// Errorx logs err at error level using the global logger.
func Errorx(err error) {
	Global().Errorx(err)
}

// Fatalx logs err at fatal level using the global logger and then calls os.Exit(1).
func Fatalx(err error) {
	Global().Fatalx(err)
}

// WithContext returns the global logger enriched with metadata from ctx.
func WithContext(ctx context.Context) Logger {
	return Global().WithContext(ctx)
}

// Named adds a sub-scope to the global logger's name.
func Named(name string) Logger {
	return Global().Named(name)
}

// Sync flushes the global logger.
func Sync() error {
	return Global().Sync()
}
