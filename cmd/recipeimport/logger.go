package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the process logger. When a log file is configured, output
// is tee'd into it and the returned closer releases the file.
func newLogger(cli *CLI, stderr io.Writer) (*slog.Logger, io.Closer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	w := stderr
	var closer io.Closer = nopCloser{}
	if cli.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cli.LogFile,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		}
		w = io.MultiWriter(stderr, rotator)
		closer = rotator
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cli.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", "recipeimport"), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
