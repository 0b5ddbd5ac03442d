package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"curconv/internal/cli"
	"curconv/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse log level: %v\n", err)
		return 1
	}
	zapLogger, err := newLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		return 1
	}
	defer func() { _ = zapLogger.Sync() }()
	sugar := zapLogger.Sugar().With("run_id", uuid.NewString())

	app, err := NewApp(cfg, sugar)
	if err != nil {
		sugar.Errorw("Failed to initialize app", "error", err)
		return 1
	}
	defer func() {
		if err := app.close(); err != nil {
			sugar.Warnw("Cleanup errors", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Options{Converter: app.conversion, Level: &level})
	if err := root.ExecuteContext(ctx); err != nil {
		sugar.Errorw("Conversion failed", "error", err)
		return 1
	}
	return 0
}

// newLogger builds a console logger on stderr; stdout carries the result.
func newLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg.Build()
}
