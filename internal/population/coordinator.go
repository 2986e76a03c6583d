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

// Package population builds synthetic directory trees for filesystem
// benchmarking. A run creates a shared root, then spawns a fixed number of
// workers, each filling its own disjoint subtree <root>/t.<worker-id> with a
// regular fan-out of files and subdirectories.
package population

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/googlecloudplatform/randpop/cfg"
	"github.com/googlecloudplatform/randpop/common"
	"github.com/googlecloudplatform/randpop/internal/fsops"
	"github.com/googlecloudplatform/randpop/internal/logger"
	"github.com/googlecloudplatform/randpop/internal/ratelimit"
	"github.com/googlecloudplatform/randpop/tracing"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// WorkerResult is what a single worker accomplished.
type WorkerResult struct {
	WorkerID string
	// Root is the worker's subtree root, <root>/t.<WorkerID>.
	Root         string
	FilesCreated uint64
	// DirsCreated includes Root itself.
	DirsCreated uint64
	// Failures tolerated under continue-on-failure.
	Failures []*CreationError
	// Err is the error that stopped the worker early, if any.
	Err     error
	Elapsed time.Duration
}

// Summary describes a completed run.
type Summary struct {
	Depth        uint64
	Workers      []WorkerResult
	JoinErrors   []*JoinError
	FilesCreated uint64
	DirsCreated  uint64
	Failures     uint64
	Elapsed      time.Duration
}

type options struct {
	fs          fsops.FileSystem
	metrics     common.MetricHandle
	traceHandle tracing.TraceHandle
}

type Option func(*options)

// WithFileSystem replaces the operating system as the target of all
// mutations.
func WithFileSystem(fs fsops.FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

func WithMetricHandle(m common.MetricHandle) Option {
	return func(o *options) { o.metrics = m }
}

func WithTraceHandle(th tracing.TraceHandle) Option {
	return func(o *options) { o.traceHandle = th }
}

// Run populates c.Root. It returns the summary of the work done together with
// the first fatal error, if any; the summary is nil only when the run failed
// before any worker was spawned.
func Run(ctx context.Context, c cfg.PopulationConfig, opts ...Option) (*Summary, error) {
	o := options{
		fs:          fsops.NewOSFileSystem(),
		metrics:     common.NewNoopMetrics(),
		traceHandle: tracing.NewNoopTracer(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if c.Threads == 0 {
		return nil, fmt.Errorf("%w: at least one thread is required", ErrConfiguration)
	}
	if c.Threads > cfg.MaxWorkers {
		return nil, fmt.Errorf("%w: cannot allocate %d workers (max %d)", ErrResourceAllocation, c.Threads, cfg.MaxWorkers)
	}
	if c.MaxPathLength <= 0 {
		return nil, fmt.Errorf("%w: max path length must be positive, got %d", ErrConfiguration, c.MaxPathLength)
	}

	fs := o.fs
	if c.OpsPerSecond > 0 {
		fs = ratelimit.NewThrottledFileSystem(newOpThrottle(c.OpsPerSecond), fs)
	}

	ctx, span := o.traceHandle.StartSpan(ctx, "population.Run")
	defer o.traceHandle.EndSpan(span)

	root := string(c.Root)
	if err := fs.Mkdir(ctx, root, os.FileMode(c.DirMode)); err != nil && !errors.Is(err, unix.EEXIST) {
		cerr := &CreationError{Op: OpMkdir, Path: root, Err: err}
		o.traceHandle.RecordError(span, cerr)
		return nil, cerr
	}

	depth, err := ComputeDepth(c.Count/c.Threads+1, c.FilesPerDir, c.DirsPerDir)
	if err != nil {
		return nil, err
	}

	ids := workerIDs(c.WorkerIdScheme, c.Threads)
	longestID := 0
	for _, id := range ids {
		longestID = max(longestID, len(id))
	}
	if l := deepestPathLength(root, longestID, depth, c.FilesPerDir, c.DirsPerDir); l >= uint64(c.MaxPathLength) {
		return nil, fmt.Errorf("%w: deepest path would be %d bytes at depth %d, limit is %d",
			ErrConfiguration, l, depth, c.MaxPathLength)
	}

	oldMask := fsops.SetUmask(os.FileMode(c.Umask))
	defer fsops.SetUmask(oldMask)

	summary := &Summary{
		Depth:   depth,
		Workers: make([]WorkerResult, 0, len(ids)),
	}
	results := make([]*WorkerResult, len(ids))
	var mu sync.Mutex

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(ids))
	var spawnErr error
	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		w := &worker{
			id:   id,
			root: filepath.Join(root, "t."+id),
			policy: &failurePolicy{
				fs:                fs,
				metrics:           o.metrics,
				continueOnFailure: c.ContinueOnFailure,
				fileMode:          os.FileMode(c.FileMode),
				dirMode:           os.FileMode(c.DirMode),
				maxPathLength:     int(c.MaxPathLength),
			},
			depth:       depth,
			filesPerDir: c.FilesPerDir,
			dirsPerDir:  c.DirsPerDir,
		}
		spawned := g.TryGo(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					jerr := &JoinError{WorkerID: id, Cause: r}
					logger.Errorf("%v", jerr)
					mu.Lock()
					summary.JoinErrors = append(summary.JoinErrors, jerr)
					mu.Unlock()
					err = nil
				}
			}()
			o.metrics.ActiveWorkers(gctx, 1)
			defer o.metrics.ActiveWorkers(gctx, -1)

			wctx, wspan := o.traceHandle.StartSpan(gctx, "population.worker")
			defer o.traceHandle.EndSpan(wspan)
			res := w.run(wctx)
			results[i] = res
			if res.Err != nil {
				o.traceHandle.RecordError(wspan, res.Err)
			}
			return res.Err
		})
		if !spawned {
			spawnErr = fmt.Errorf("%w: worker %s", ErrSpawn, id)
			logger.Errorf("%v", spawnErr)
			break
		}
	}
	err = g.Wait()
	summary.Elapsed = time.Since(start)

	for _, res := range results {
		if res == nil {
			continue
		}
		summary.Workers = append(summary.Workers, *res)
		summary.FilesCreated += res.FilesCreated
		summary.DirsCreated += res.DirsCreated
		summary.Failures += uint64(len(res.Failures))
	}
	if err == nil {
		err = spawnErr
	}
	if err != nil {
		o.traceHandle.RecordError(span, err)
	}
	return summary, err
}

// newOpThrottle allows opsPerSecond creations per second with bursts of up
// to one second's worth.
func newOpThrottle(opsPerSecond float64) ratelimit.Throttle {
	capacity, err := ratelimit.ChooseLimiterCapacity(opsPerSecond, time.Second)
	if err != nil {
		// Rates below one per second still need room for a single token.
		capacity = 1
	}
	return ratelimit.NewThrottle(opsPerSecond, int(min(capacity, uint64(cfg.MaxWorkers))))
}

func workerIDs(scheme cfg.WorkerIDScheme, n uint64) []string {
	ids := make([]string, n)
	for i := range ids {
		if scheme == cfg.IndexWorkerIDScheme {
			ids[i] = strconv.Itoa(i)
		} else {
			ids[i] = uuid.NewString()
		}
	}
	return ids
}

// deepestPathLength is the length of the longest path any worker produces:
// the worker root, one "/dir.N" per level below it and a trailing "/file.M".
func deepestPathLength(root string, idLen int, depth, filesPerDir, dirsPerDir uint64) uint64 {
	l := uint64(len(root) + len("/t.") + idLen)
	if dirsPerDir > 0 {
		l = addSat(l, mulSat(depth, uint64(len("/dir.")+digits(dirsPerDir-1))))
	}
	if filesPerDir > 0 {
		l = addSat(l, uint64(len("/file.")+digits(filesPerDir-1)))
	}
	return l
}

func digits(n uint64) int {
	return len(strconv.FormatUint(n, 10))
}

type worker struct {
	id          string
	root        string
	policy      *failurePolicy
	depth       uint64
	filesPerDir uint64
	dirsPerDir  uint64
}

// run creates the worker's root and populates it.
func (w *worker) run(ctx context.Context) *WorkerResult {
	start := time.Now()
	res := &WorkerResult{WorkerID: w.id, Root: w.root}
	defer func() {
		res.Failures = w.policy.failures
		res.Elapsed = time.Since(start)
	}()

	ok, err := w.policy.Attempt(ctx, OpMkdir, w.root)
	if err != nil {
		res.Err = err
		return res
	}
	if ok {
		res.DirsCreated++
	}

	m := newMaterializer(w.policy, w.root, w.filesPerDir, w.dirsPerDir)
	res.Err = m.materialize(ctx, w.depth)
	res.FilesCreated = m.filesCreated
	res.DirsCreated += m.dirsCreated
	logger.Debugf("Worker %s finished: %d files, %d dirs, %d failures",
		w.id, res.FilesCreated, res.DirsCreated, len(w.policy.failures))
	return res
}
