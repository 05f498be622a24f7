package logger

import (
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals // static palette shared by all pretty loggers
var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel:  color.New(color.FgHiBlue),
	zapcore.InfoLevel:   color.New(color.FgGreen),
	zapcore.WarnLevel:   color.New(color.FgYellow, color.Bold),
	zapcore.ErrorLevel:  color.New(color.FgRed, color.Bold),
	zapcore.DPanicLevel: color.New(color.FgHiRed, color.Bold),
	zapcore.PanicLevel:  color.New(color.FgHiRed, color.Bold),
	zapcore.FatalLevel:  color.New(color.FgMagenta, color.Bold),
}

//nolint:gochecknoglobals // static style for logger names
var nameColor = color.New(color.FgCyan)

func coloredLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	c, ok := levelColors[l]
	if !ok {
		enc.AppendString(l.CapitalString())
		return
	}
	enc.AppendString(c.Sprintf("%-5s", l.CapitalString()))
}

func coloredNameEncoder(name string, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(nameColor.Sprint(name))
}

// newPrettyLogger builds a console logger with colored levels and names.
// Fields are appended as inline JSON after the message.
func newPrettyLogger(cfg *zap.Config) *zap.Logger {
	encCfg := cfg.EncoderConfig
	encCfg.EncodeLevel = coloredLevelEncoder
	encCfg.EncodeName = coloredNameEncoder
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.ConsoleSeparator = " "

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
}
