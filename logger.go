package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initLogger 同时输出到控制台与可执行文件旁的 debug/service.log。
// 返回的文件句柄由 main 负责关闭。
func initLogger() (*os.File, error) {
	logDir := "debug"
	if exe, err := os.Executable(); err == nil {
		logDir = filepath.Join(filepath.Dir(exe), "debug")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(filepath.Join(logDir, "service.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	log.Logger = zerolog.New(io.MultiWriter(console, logFile)).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	return logFile, nil
}
