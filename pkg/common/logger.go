package common

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// current is written by initLogger and the test setters only; handlers,
// queue workers and mqtt callbacks read it concurrently.
var (
	current atomic.Pointer[zap.Logger]
	once    sync.Once
)

func getLogger() *zap.Logger {
	initLogger()
	return current.Load()
}

func GetLogger() *zap.Logger {
	return getLogger().Named("default")
}

func GetLoggerWith(name string, fields ...zap.Field) *zap.Logger {
	return getLogger().Named(name).With(fields...)
}

// GetCategoryLogger is GetLoggerWith with the category field set, the way
// every service in this module tags its log lines.
func GetCategoryLogger(name string, category string) *zap.Logger {
	return GetLoggerWith(name, zap.String(LoggerFieldCategory, category))
}

func logsDirectory() string {
	if dir := os.Getenv(EnvKeyLogDir); dir != "" {
		return dir
	}

	dir, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting current directory: %v", err)
	}
	return filepath.Join(dir, "logs")
}

func initLogger() {
	once.Do(func() {
		logsDir := logsDirectory()
		logsFile := filepath.Join(logsDir, "app.log")

		if err := os.MkdirAll(logsDir, os.ModePerm); err != nil {
			log.Fatalf("Error find/create logs directory: %v", err)
		}

		logFile := &lumberjack.Logger{
			Filename:   logsFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28,   // days
			Compress:   true, // gzip
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(logFile),
			zap.InfoLevel,
		)

		if IsProduction() {
			current.Store(zap.New(fileCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
		} else {
			consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
			consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel)

			combinedCore := zapcore.NewTee(fileCore, consoleCore)
			current.Store(zap.New(combinedCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
		}
	})
}

func SetTestCaptureLogger(buf *bytes.Buffer, level zapcore.Level) {
	initLogger()

	writer := zapcore.AddSync(buf)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, writer, level)
	current.Store(zap.New(core))
}

func SetTestLoggerNop() {
	initLogger()

	current.Store(zap.NewNop())
}
