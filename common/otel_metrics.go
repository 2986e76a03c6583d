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

package common

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// Attribute Keys
	// fsOpKey specifies the FS operation like MkDir or CreateFile.
	fsOpKey = attribute.Key("fs_op")
	// fsErrCategoryKey specifies the error category. The intention is to reduce the cardinality of FSError by grouping errors together.
	fsErrCategoryKey = attribute.Key("fs_error_category")

	fsOpsOptionCache,
	fsOpsErrorCategoryOptionCache sync.Map
)

func loadOrStoreAttrOption[K comparable](mp *sync.Map, key K, attrSetGenFunc func() attribute.Set) metric.MeasurementOption {
	attrSet, ok := mp.Load(key)
	if ok {
		return attrSet.(metric.MeasurementOption)
	}
	v, _ := mp.LoadOrStore(key, metric.WithAttributeSet(attrSetGenFunc()))
	return v.(metric.MeasurementOption)
}

func fsOpsAttrOption(fsOps string) metric.MeasurementOption {
	return loadOrStoreAttrOption(&fsOpsOptionCache, fsOps,
		func() attribute.Set {
			return attribute.NewSet(fsOpKey.String(fsOps))
		})
}

func getFsOpsErrorCategoryAttributeOption(attr FSOpsErrorCategory) metric.MeasurementOption {
	return loadOrStoreAttrOption(&fsOpsErrorCategoryOptionCache, attr,
		func() attribute.Set {
			return attribute.NewSet(fsOpKey.String(attr.FSOps), fsErrCategoryKey.String(attr.ErrorCategory))
		})
}

// otelMetrics maintains the list of all metrics computed while populating a
// tree. The per-op counters are plain atomics observed on collection so that
// the hot path never allocates.
type otelMetrics struct {
	fsOpMkDirAtomic,
	fsOpCreateFileAtomic *atomic.Int64

	fsOpsErrorCount metric.Int64Counter
	fsOpsLatency    metric.Float64Histogram
	activeWorkers   metric.Int64UpDownCounter
}

func (o *otelMetrics) OpsCount(_ context.Context, inc int64, fsOp string) {
	switch fsOp {
	case OpMkDir:
		o.fsOpMkDirAtomic.Add(inc)
	case OpCreateFile:
		o.fsOpCreateFileAtomic.Add(inc)
	}
}

func (o *otelMetrics) OpsLatency(ctx context.Context, latency time.Duration, fsOp string) {
	o.fsOpsLatency.Record(ctx, float64(latency.Microseconds()), fsOpsAttrOption(fsOp))
}

func (o *otelMetrics) OpsErrorCount(ctx context.Context, inc int64, attrs FSOpsErrorCategory) {
	o.fsOpsErrorCount.Add(ctx, inc, getFsOpsErrorCategoryAttributeOption(attrs))
}

func (o *otelMetrics) ActiveWorkers(ctx context.Context, inc int64) {
	o.activeWorkers.Add(ctx, inc)
}

func NewOTelMetrics() (MetricHandle, error) {
	fsOpsMeter := otel.Meter("fs_op")
	workerMeter := otel.Meter("worker")
	var fsOpMkDirAtomic, fsOpCreateFileAtomic atomic.Int64

	_, err1 := fsOpsMeter.Int64ObservableCounter("fs/ops_count", metric.WithDescription("The cumulative number of ops processed by the file system."),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			obsrv.Observe(fsOpMkDirAtomic.Load(), fsOpsAttrOption(OpMkDir))
			obsrv.Observe(fsOpCreateFileAtomic.Load(), fsOpsAttrOption(OpCreateFile))
			return nil
		}))

	fsOpsErrorCount, err2 := fsOpsMeter.Int64Counter("fs/ops_error_count", metric.WithDescription("The cumulative number of errors generated by file system operations."))

	fsOpsLatency, err3 := fsOpsMeter.Float64Histogram("fs/ops_latency", metric.WithDescription("The cumulative distribution of file system operation latencies"), metric.WithUnit("us"),
		defaultLatencyDistribution)

	activeWorkers, err4 := workerMeter.Int64UpDownCounter("worker/active_count", metric.WithDescription("The number of workers currently populating a subtree."))

	if err := errors.Join(err1, err2, err3, err4); err != nil {
		return nil, err
	}

	return &otelMetrics{
		fsOpMkDirAtomic:      &fsOpMkDirAtomic,
		fsOpCreateFileAtomic: &fsOpCreateFileAtomic,
		fsOpsErrorCount:      fsOpsErrorCount,
		fsOpsLatency:         fsOpsLatency,
		activeWorkers:        activeWorkers,
	}, nil
}

var defaultLatencyDistribution = metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5, 6, 8, 10, 13, 16, 20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500, 650, 800, 1000, 2000, 5000, 10000, 20000, 50000, 100000)
