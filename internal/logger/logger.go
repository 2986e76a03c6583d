// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/googlecloudplatform/randpop/cfg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ProgrammeName is attached to file logs so that randpop output can be told
// apart when several tools share a log sink.
const ProgrammeName string = "randpop"

// asyncBufferSize is the number of pending log lines held in memory when
// logging to a file.
const asyncBufferSize = 4096

var (
	defaultLoggerFactory *loggerFactory
	defaultLogger        *slog.Logger
	programLevel         = new(slog.LevelVar)
)

// InitLogFile initializes the logger factory to create loggers that print to
// a rotating log file. In case of empty file path, logs keep going to stderr.
func InitLogFile(newLogConfig cfg.LoggingConfig) error {
	var writer io.WriteCloser
	if newLogConfig.FilePath != "" {
		// Fail early if the file can't be created or written.
		f, err := os.OpenFile(
			string(newLogConfig.FilePath),
			os.O_WRONLY|os.O_CREATE|os.O_APPEND,
			0644,
		)
		if err != nil {
			return fmt.Errorf("error while opening log file: %w", err)
		}
		f.Close()

		writer = NewAsyncLogger(&lumberjack.Logger{
			Filename:   string(newLogConfig.FilePath),
			MaxSize:    int(newLogConfig.LogRotate.MaxFileSizeMb),
			MaxBackups: int(newLogConfig.LogRotate.BackupFileCount),
			Compress:   newLogConfig.LogRotate.Compress,
		}, asyncBufferSize)
	}

	defaultLoggerFactory = &loggerFactory{
		fileWriter:      writer,
		format:          newLogConfig.Format,
		level:           string(newLogConfig.Severity),
		logRotateConfig: newLogConfig.LogRotate,
	}
	defaultLogger = defaultLoggerFactory.newLogger(string(newLogConfig.Severity))

	return nil
}

// init initializes the logger factory to use stderr.
func init() {
	defaultLoggerFactory = &loggerFactory{
		fileWriter: nil,
		format:     "text",
		level:      cfg.INFO,
	}
	defaultLogger = defaultLoggerFactory.newLogger(cfg.INFO)
}

// Close flushes and closes the log file when necessary.
func Close() {
	if w := defaultLoggerFactory.fileWriter; w != nil {
		w.Close()
		defaultLoggerFactory.fileWriter = nil
		defaultLogger = defaultLoggerFactory.newLogger(defaultLoggerFactory.level)
	}
}

// SetLogFormat updates the log format of the default logger.
func SetLogFormat(format string) {
	defaultLoggerFactory.format = format
	defaultLogger = defaultLoggerFactory.newLogger(defaultLoggerFactory.level)
}

// Tracef prints the message with TRACE severity in the specified format.
func Tracef(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...))
}

// Debugf prints the message with DEBUG severity in the specified format.
func Debugf(format string, v ...interface{}) {
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

// Infof prints the message with INFO severity in the specified format.
func Infof(format string, v ...interface{}) {
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Info prints the message with INFO severity.
func Info(message string, args ...any) {
	defaultLogger.Info(message, args...)
}

// Warnf prints the message with WARNING severity in the specified format.
func Warnf(format string, v ...interface{}) {
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}

// Errorf prints the message with ERROR severity in the specified format.
func Errorf(format string, v ...interface{}) {
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

type loggerFactory struct {
	// If nil, log to stderr. Otherwise, log to this writer.
	fileWriter      io.WriteCloser
	format          string
	level           string
	logRotateConfig cfg.LogRotateLoggingConfig
}

func (f *loggerFactory) newLogger(level string) *slog.Logger {
	// create a new logger
	l := slog.New(f.handler(programLevel, ""))
	setLoggingLevel(level, programLevel)
	return l
}

func (f *loggerFactory) createJsonOrTextHandler(writer io.Writer, levelVar *slog.LevelVar, prefix string) slog.Handler {
	if f.format == "text" {
		return slog.NewTextHandler(writer, getHandlerOptions(levelVar, prefix, f.format))
	}
	return slog.NewJSONHandler(writer, getHandlerOptions(levelVar, prefix, f.format))
}

func (f *loggerFactory) handler(levelVar *slog.LevelVar, prefix string) slog.Handler {
	if f.fileWriter != nil {
		return f.createJsonOrTextHandler(f.fileWriter, levelVar, prefix)
	}
	return f.createJsonOrTextHandler(os.Stderr, levelVar, prefix)
}
