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
	"log/slog"

	"github.com/googlecloudplatform/randpop/cfg"
)

// Severity levels not covered by slog. TRACE sits below DEBUG so that every
// other level is logged, OFF sits above ERROR so that nothing is.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelOff   = slog.Level(12)
)

const (
	messageKey   = "message"
	severityKey  = "severity"
	timestampKey = "timestamp"
	secondsKey   = "seconds"
	nanosKey     = "nanos"

	textTimeLayout = "02/01/2006 15:04:05.000000"
)

func setLoggingLevel(level string, programLevel *slog.LevelVar) {
	switch level {
	// logs having severity >= the configured value will be logged.
	case cfg.TRACE:
		programLevel.Set(LevelTrace)
	case cfg.DEBUG:
		programLevel.Set(LevelDebug)
	case cfg.INFO:
		programLevel.Set(LevelInfo)
	case cfg.WARNING:
		programLevel.Set(LevelWarn)
	case cfg.ERROR:
		programLevel.Set(LevelError)
	case cfg.OFF:
		programLevel.Set(LevelOff)
	}
}

func severityName(level slog.Level) string {
	switch {
	case level < LevelDebug:
		return cfg.TRACE
	case level < LevelInfo:
		return cfg.DEBUG
	case level < LevelWarn:
		return cfg.INFO
	case level < LevelError:
		return cfg.WARNING
	default:
		return cfg.ERROR
	}
}

// getHandlerOptions renames the built-in slog keys to the ones understood by
// fluentd style parsers and prefixes every message.
func getHandlerOptions(levelVar *slog.LevelVar, prefix string, format string) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				t := a.Value.Time()
				if format == "text" {
					return slog.String(slog.TimeKey, t.Round(0).Format(textTimeLayout))
				}
				return slog.Group(timestampKey,
					slog.Int64(secondsKey, t.Unix()),
					slog.Int(nanosKey, t.Nanosecond()))
			case slog.LevelKey:
				return slog.String(severityKey, severityName(a.Value.Any().(slog.Level)))
			case slog.MessageKey:
				return slog.String(messageKey, prefix+a.Value.String())
			}
			return a
		},
	}
}
