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

package cfg

import (
	"fmt"
	"math"
	"os"
)

const (
	ThreadsInvalidValueError       = "the value of threads must be at least 1"
	ThreadsTooHighError            = "the value of threads is too high to be supported. Max is 65536"
	RootEmptyError                 = "root must not be empty"
	MaxPathLengthInvalidValueError = "the value of max-path-length must be positive"
	OpsPerSecondInvalidValueError  = "the value of ops-per-second must be a finite value >= 0"
	ModeInvalidValueError          = "permission bits must be within 0 and 0777"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidLogFormat(format string) error {
	switch format {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("invalid log format: %q, must be one of [text, json]", format)
}

func isValidMode(m Octal) error {
	if m < 0 || os.FileMode(m) > os.ModePerm {
		return fmt.Errorf("%s: %o", ModeInvalidValueError, int(m))
	}
	return nil
}

func isValidPopulationConfig(c *PopulationConfig) error {
	if c.Threads < 1 {
		return fmt.Errorf(ThreadsInvalidValueError)
	}
	if c.Threads > MaxWorkers {
		return fmt.Errorf(ThreadsTooHighError)
	}
	if c.Root == "" {
		return fmt.Errorf(RootEmptyError)
	}
	if c.MaxPathLength <= 0 {
		return fmt.Errorf(MaxPathLengthInvalidValueError)
	}
	if c.OpsPerSecond < 0 || math.IsNaN(c.OpsPerSecond) || math.IsInf(c.OpsPerSecond, 0) {
		return fmt.Errorf(OpsPerSecondInvalidValueError)
	}
	for _, m := range []Octal{c.FileMode, c.DirMode, c.Umask} {
		if err := isValidMode(m); err != nil {
			return err
		}
	}
	return nil
}

func isValidTracingMode(mode string) error {
	switch mode {
	case "", TracingModeStdout:
		return nil
	}
	return fmt.Errorf("unsupported tracing mode: %q", mode)
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err = isValidLogFormat(config.Logging.Format); err != nil {
		return fmt.Errorf("error parsing logging config: %w", err)
	}

	if err = isValidPopulationConfig(&config.Population); err != nil {
		return fmt.Errorf("error parsing population config: %w", err)
	}

	if config.Metrics.PrometheusPort < 0 {
		return fmt.Errorf("error parsing metrics config: prometheus-port can't be negative")
	}

	if err = isValidTracingMode(config.Monitoring.ExperimentalTracingMode); err != nil {
		return fmt.Errorf("error parsing monitoring config: %w", err)
	}

	return nil
}
