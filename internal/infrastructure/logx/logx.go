package logx

import (
	"strings"

	"stock-snapshot/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	level  zap.AtomicLevel
)

func init() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level = zapCfg.Level
	SetLevelOn(level, config.Load().LogLevel)

	var err error
	logger, err = zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// SetLevel changes the level of the running logger. Used once .env has been loaded.
func SetLevel(name string) { SetLevelOn(level, name) }

// SetLevelOn applies a level name such as "debug" to lvl. Blank or unknown names leave it unchanged.
func SetLevelOn(lvl zap.AtomicLevel, name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	_ = lvl.UnmarshalText([]byte(name))
}
