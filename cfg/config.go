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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Monitoring MonitoringConfig `yaml:"monitoring"`

	Population PopulationConfig `yaml:"population"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int64 `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int64 `yaml:"max-file-size-mb"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format string `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

type MonitoringConfig struct {
	ExperimentalTracingMode string `yaml:"experimental-tracing-mode"`
}

type PopulationConfig struct {
	ContinueOnFailure bool `yaml:"continue-on-failure"`

	Count uint64 `yaml:"count"`

	DirMode Octal `yaml:"dir-mode"`

	DirsPerDir uint64 `yaml:"dirs-per-dir"`

	FileMode Octal `yaml:"file-mode"`

	FilesPerDir uint64 `yaml:"files-per-dir"`

	MaxPathLength int64 `yaml:"max-path-length"`

	OpsPerSecond float64 `yaml:"ops-per-second"`

	Root ResolvedPath `yaml:"root"`

	Threads uint64 `yaml:"threads"`

	Umask Octal `yaml:"umask"`

	WorkerIdScheme WorkerIDScheme `yaml:"worker-id-scheme"`
}

func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	var err error

	flagSet.Uint64P("count", "c", 1000, "Total number of entries (files and directories) to create across all workers.")

	err = v.BindPFlag("population.count", flagSet.Lookup("count"))
	if err != nil {
		return err
	}

	flagSet.StringP("dir-mode", "", "0755", "Permission bits for created directories, in octal.")

	err = v.BindPFlag("population.dir-mode", flagSet.Lookup("dir-mode"))
	if err != nil {
		return err
	}

	flagSet.StringP("experimental-tracing-mode", "", "", "Experimental: specify tracing mode. Value can be '' (disabled) or 'stdout'.")

	err = v.BindPFlag("monitoring.experimental-tracing-mode", flagSet.Lookup("experimental-tracing-mode"))
	if err != nil {
		return err
	}

	flagSet.StringP("file-mode", "", "0644", "Permission bits for created files, in octal.")

	err = v.BindPFlag("population.file-mode", flagSet.Lookup("file-mode"))
	if err != nil {
		return err
	}

	flagSet.BoolP("ignore-error", "i", false, "Log creation failures and keep going instead of aborting the run.")

	err = v.BindPFlag("population.continue-on-failure", flagSet.Lookup("ignore-error"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "The file for storing logs. When not provided, logs are printed to stderr.")

	err = v.BindPFlag("logging.file-path", flagSet.Lookup("log-file"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "text", "The format of the log file: 'text' or 'json'.")

	err = v.BindPFlag("logging.format", flagSet.Lookup("log-format"))
	if err != nil {
		return err
	}

	flagSet.IntP("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. A value of 0 indicates all backup files are retained.")

	err = v.BindPFlag("logging.log-rotate.backup-file-count", flagSet.Lookup("log-rotate-backup-file-count"))
	if err != nil {
		return err
	}

	flagSet.BoolP("log-rotate-compress", "", true, "Controls whether the rotated log files should be compressed using gzip.")

	err = v.BindPFlag("logging.log-rotate.compress", flagSet.Lookup("log-rotate-compress"))
	if err != nil {
		return err
	}

	flagSet.IntP("log-rotate-max-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated.")

	err = v.BindPFlag("logging.log-rotate.max-file-size-mb", flagSet.Lookup("log-rotate-max-file-size-mb"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", "info", "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")

	err = v.BindPFlag("logging.severity", flagSet.Lookup("log-severity"))
	if err != nil {
		return err
	}

	flagSet.IntP("max-path-length", "", DefaultMaxPathLength, "The longest path, in bytes, that a run may produce. Runs whose deepest path would exceed it are rejected.")

	err = v.BindPFlag("population.max-path-length", flagSet.Lookup("max-path-length"))
	if err != nil {
		return err
	}

	flagSet.Uint64P("ndirs", "d", 10, "Number of subdirectories created in every non-leaf directory.")

	err = v.BindPFlag("population.dirs-per-dir", flagSet.Lookup("ndirs"))
	if err != nil {
		return err
	}

	flagSet.Uint64P("nfiles", "f", 10, "Number of files created in every directory.")

	err = v.BindPFlag("population.files-per-dir", flagSet.Lookup("nfiles"))
	if err != nil {
		return err
	}

	flagSet.Float64P("ops-per-second", "", 0, "Upper bound on file and directory creations per second across all workers. 0 means unlimited.")

	err = v.BindPFlag("population.ops-per-second", flagSet.Lookup("ops-per-second"))
	if err != nil {
		return err
	}

	flagSet.IntP("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port and a path of /metrics.")

	err = v.BindPFlag("metrics.prometheus-port", flagSet.Lookup("prometheus-port"))
	if err != nil {
		return err
	}

	flagSet.StringP("root", "r", "./randpop", "Directory under which the worker subtrees are created.")

	err = v.BindPFlag("population.root", flagSet.Lookup("root"))
	if err != nil {
		return err
	}

	flagSet.Uint64P("threads", "t", 4, "Number of concurrent workers, each populating its own subtree.")

	err = v.BindPFlag("population.threads", flagSet.Lookup("threads"))
	if err != nil {
		return err
	}

	flagSet.StringP("umask", "", "0", "File creation mask applied while workers run, in octal.")

	err = v.BindPFlag("population.umask", flagSet.Lookup("umask"))
	if err != nil {
		return err
	}

	flagSet.StringP("worker-id-scheme", "", "uuid", "How worker directory names are derived: 'uuid' (unique per run) or 'index' (t.0, t.1, ...).")

	err = v.BindPFlag("population.worker-id-scheme", flagSet.Lookup("worker-id-scheme"))
	if err != nil {
		return err
	}

	return nil
}
