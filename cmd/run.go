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

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/googlecloudplatform/randpop/cfg"
	"github.com/googlecloudplatform/randpop/common"
	"github.com/googlecloudplatform/randpop/internal/logger"
	"github.com/googlecloudplatform/randpop/internal/monitor"
	"github.com/googlecloudplatform/randpop/internal/population"
	"github.com/googlecloudplatform/randpop/internal/util"
	"github.com/googlecloudplatform/randpop/tracing"
)

const shutdownTimeout = 5 * time.Second

// printBanner writes the run parameters to out before any work starts.
func printBanner(out io.Writer, c *cfg.PopulationConfig, depth uint64) {
	fmt.Fprintf(out, "## total_count = %d\n", c.Count)
	fmt.Fprintf(out, "## subdirs = %d\n", c.DirsPerDir)
	fmt.Fprintf(out, "## files = %d\n", c.FilesPerDir)
	fmt.Fprintf(out, "## threads = %d\n", c.Threads)
	fmt.Fprintf(out, "## test directory = %s\n", c.Root)
	fmt.Fprintf(out, "## tree depth = %d\n", depth)
}

func runPopulation(c cfg.Config, out io.Writer) (err error) {
	if err = logger.InitLogFile(c.Logging); err != nil {
		return fmt.Errorf("init log file: %w", err)
	}
	defer logger.Close()
	if cfgStr, err := util.YAMLStringify(c); err == nil {
		logger.Debugf("randpop config:\n%s", cfgStr)
	}

	ctx := context.Background()
	shutdownFn := common.JoinShutdownFunc(
		monitor.SetupOTelMetricExporters(ctx, &c),
		monitor.SetupTracing(ctx, &c),
	)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if serr := shutdownFn(shutdownCtx); serr != nil {
			logger.Warnf("Error while shutting down telemetry: %v", serr)
		}
	}()

	opts := []population.Option{population.WithTraceHandle(traceHandle(&c))}
	if mh := metricHandle(&c); mh != nil {
		opts = append(opts, population.WithMetricHandle(mh))
	}

	// Run validates threads too; checking first keeps the banner honest.
	depth, err := population.ComputeDepth(c.Population.Count/c.Population.Threads+1,
		c.Population.FilesPerDir, c.Population.DirsPerDir)
	if err != nil {
		return err
	}
	printBanner(out, &c.Population, depth)

	summary, err := population.Run(ctx, c.Population, opts...)
	if summary != nil {
		for _, jerr := range summary.JoinErrors {
			logger.Warnf("%v", jerr)
		}
		logger.Infof("Populated %s to depth %d: %d files, %d dirs, %d failures in %v",
			c.Population.Root, summary.Depth, summary.FilesCreated, summary.DirsCreated,
			summary.Failures, summary.Elapsed)
	}
	if err != nil {
		logger.Errorf("Population failed: %v", err)
	}
	return err
}

func metricHandle(c *cfg.Config) common.MetricHandle {
	if c.Metrics.PrometheusPort <= 0 {
		return nil
	}
	mh, err := common.NewOTelMetrics()
	if err != nil {
		logger.Errorf("Failed to create metric handle, metrics are disabled: %v", err)
		return nil
	}
	return mh
}

func traceHandle(c *cfg.Config) tracing.TraceHandle {
	if c.Monitoring.ExperimentalTracingMode == "" {
		return tracing.NewNoopTracer()
	}
	return tracing.NewOTelTracer()
}
